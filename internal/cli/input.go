package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/config"
)

// articleSource names where an article comes from: a web page, a file or
// stdin ("-")
type articleSource struct {
	path string
	url  string
}

func (s articleSource) empty() bool {
	return s.path == "" && s.url == ""
}

func (s articleSource) validate() error {
	if s.path != "" && s.url != "" {
		return fmt.Errorf("cannot read an article from both a file and --url")
	}
	return nil
}

// loadArticle loads the article described by src. An empty source yields a
// nil document.
func loadArticle(ctx context.Context, cfg *config.Config, src articleSource, stdin io.Reader) (*article.Document, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}

	switch {
	case src.url != "":
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Fetching article: %s\n", src.url)
		}
		fetcher := article.NewFetcher(cfg.Article.FetchTimeout, cfg.Article.MaxBytes, cfg.Server.UserAgent)
		return fetcher.Fetch(ctx, src.url)

	case src.path == "-":
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Reading from stdin...\n")
		}
		return article.LoadReader(stdin, cfg.Article.MaxBytes)

	case src.path != "":
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Reading file: %s\n", src.path)
		}
		return article.LoadFile(src.path, cfg.Article.MaxBytes)
	}

	return nil, nil
}
