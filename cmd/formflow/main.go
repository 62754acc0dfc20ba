package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/reasoning"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/schema"
	"github.com/goliatone/go-formflow/pkg/session"
)

func main() {
	formPath := flag.String("form", "", "form document path or URL (JSON or YAML)")
	operation := flag.String("operation", "", "treat -form as an OpenAPI document and import this operation ID")
	output := flag.String("output", "", "output file (stdout if empty)")
	format := flag.String("format", "json", "export format: json, form, or pretty")
	timeout := flag.Duration("timeout", 30*time.Second, "timeout for remote form fetches")
	flag.Parse()

	if strings.TrimSpace(*formPath) == "" {
		log.Fatalf("missing required -form flag")
	}

	ctx := context.Background()

	form, err := loadForm(ctx, *formPath, *operation, *timeout)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	var options []session.Option
	if config := reasoning.ConfigFromEnv(); config.Enabled() {
		metrics := reasoning.NewMetrics()
		options = append(options, session.WithService(
			metrics.Instrument("interview", reasoning.NewClient(config)),
		))
	}

	sess := session.New(form, options...)
	runner := tui.New(tui.WithExportFormat(session.ExportFormat(*format)))

	payload, err := runner.Run(ctx, sess)
	if err != nil {
		log.Fatalf("Interview failed: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, payload, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Answers written to %s\n", *output)
	} else {
		fmt.Println(string(payload))
	}
}

func loadForm(ctx context.Context, path, operation string, timeout time.Duration) (*schema.Form, error) {
	if operation != "" {
		data, err := readSource(ctx, path, timeout)
		if err != nil {
			return nil, err
		}
		return openapi.Import(ctx, data, operation)
	}

	loader := schema.NewLoader(
		schema.WithHTTPClient(http.DefaultClient),
		schema.WithRequestTimeout(timeout),
	)
	return loader.Load(ctx, parseSource(path))
}

func readSource(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(path)
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}
