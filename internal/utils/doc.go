// Package utils holds small platform helpers, such as opening a web page in
// the user's browser.
package utils
