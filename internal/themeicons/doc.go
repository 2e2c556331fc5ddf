// Package themeicons locates the themed icon assets packaged
// applications ship: a light and a dark variant plus an optional
// monochrome mask, laid out as <root>/<app-id>/{light,dark,mask}.png.
package themeicons
