// Package testing contains fixtures shared by the build and command tests: a
// fake content delivery API, payload builders, a configuration builder, and
// file system assertions.
package testing

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)

// ListingTemplate is a minimal listing page with chrome and both markers.
const ListingTemplate = `<!DOCTYPE html>
<html lang="en">
<head><title>News</title><link rel="stylesheet" href="css/site.css"></head>
<body>
<header><a href="index.html">Home</a></header>
<main>
<!-- NEWS:START -->
old cards
<!-- NEWS:END -->
</main>
<footer>Footer</footer>
</body>
</html>
`
