// Package http exposes the market analysis API over chi. Handlers stay
// thin: they validate input, call the service layer, and translate the
// analytics package's typed conditions into structured API errors.
package http
