// Package forms holds the login and registration controllers.
//
// A controller validates its input, runs at most one submission at a
// time, and reports every outcome through a View. It is the only place
// where API errors are turned into user messages. Rendering is left to
// the View implementation (the terminal adapter in package cli).
package forms
