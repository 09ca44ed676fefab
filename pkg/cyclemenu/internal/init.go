// Package internal contains the host infrastructure of the cyclemenu widget:
// logging, theming, icon rasterizing, localization, d-pad repeat and the SDL
// window. Types and functions in this package are not part of the public API.
package internal
