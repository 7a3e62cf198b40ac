package felog

import "embed"

// EmbeddedAssets holds the site stylesheet, served at /public/felog.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
