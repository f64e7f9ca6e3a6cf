// Package data provides the embedded sentence packs, lasso questions and
// default tuning.
package data

import (
	"embed"
	"io/fs"
)

// dataFS embeds the data directory at build time.
//
//go:embed sentences/*.json lasso/*.json tuning.yaml
var dataFS embed.FS

// FS returns the embedded filesystem containing game data.
func FS() embed.FS {
	return dataFS
}

// Sentences returns the filesystem rooted at the sentence packs.
func Sentences() fs.FS {
	return mustSub("sentences")
}

// Lasso returns the filesystem rooted at the word-lasso question sets.
func Lasso() fs.FS {
	return mustSub("lasso")
}

// Tuning returns the default tuning YAML.
func Tuning() []byte {
	content, err := dataFS.ReadFile("tuning.yaml")
	if err != nil {
		panic(err)
	}
	return content
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(dataFS, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
