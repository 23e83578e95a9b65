package regex

import "regexp"

// this package contains no tests because the regexes are being tested in the corresponding packages

// Url captures absolute http(s) URLs with a host.
var Url = regexp.MustCompile(`^https?://[a-zA-Z0-9.-]+(?::[0-9]+)?(?:/\S*)?$`)
