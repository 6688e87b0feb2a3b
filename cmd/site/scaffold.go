package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmheller/tmheller.dev/app"
	"github.com/tmheller/tmheller.dev/kit/slugutil"
)

const postTemplate = `---
title: %s
date: '%s'
tags:
  - draft
---

Write here.
`

// yamlSingleQuote wraps s in single quotes, doubling any embedded quote
// per YAML's single-quoted scalar rules.
func yamlSingleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// scaffoldPost creates {contentDir}/{slug}/index.md pre-filled with the
// required frontmatter keys, dated today. It refuses to touch an existing
// post folder.
func scaffoldPost(cfg *app.Config, title string) (string, error) {
	slug := slugutil.ForAnchor(title)
	if slug == "" {
		return "", fmt.Errorf("title %q produces an empty slug", title)
	}

	dir := filepath.Join(cfg.ContentDir, slug)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("post folder already exists: %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	body := fmt.Sprintf(postTemplate, yamlSingleQuote(title), time.Now().Format("2006-01-02"))
	if err := os.WriteFile(filepath.Join(dir, "index.md"), []byte(body), 0o644); err != nil {
		return "", err
	}
	return dir, nil
}
