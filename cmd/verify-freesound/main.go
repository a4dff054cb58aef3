// Command verify-freesound runs a short series of live calls against the
// Freesound API and prints a PASS/FAIL report. It exits non-zero when any
// check fails.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/me/freesound/internal/logging"
	"github.com/me/freesound/pkg/freesound"
	"github.com/me/freesound/pkg/query/search"
	"github.com/me/freesound/pkg/query/sound"
	"github.com/me/freesound/pkg/query/user"
	"github.com/me/freesound/pkg/tokenstore"
)

type check struct {
	Name   string
	Passed bool
	Detail string
}

type options struct {
	configPath  string
	apiKey      string
	baseURL     string
	clientID    string
	rpm         int
	searchText  string
	accessToken string
	tokenDB     string
	tokenUser   string
	authCode    string
	download    bool
	logLevel    string
	logFormat   string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("verify-freesound", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.apiKey, "api-key", "", "API key (default: $FREESOUND_API_KEY or ~/.freesound_api_key)")
	fs.StringVar(&opts.baseURL, "base-url", "", "API root URL")
	fs.StringVar(&opts.clientID, "client-id", "", "OAuth2 client id")
	fs.IntVar(&opts.rpm, "rpm", -1, "requests per minute, 0 disables throttling (default from config)")
	fs.StringVar(&opts.searchText, "query", "piano", "text to search for")
	fs.StringVar(&opts.accessToken, "access-token", "", "OAuth2 access token for the authorised checks")
	fs.StringVar(&opts.tokenDB, "token-db", "", "SQLite token store to read the access token from")
	fs.StringVar(&opts.tokenUser, "user", "", "key of the stored token in -token-db")
	fs.StringVar(&opts.authCode, "auth-code", "", "authorization code to exchange and store under -user")
	fs.BoolVar(&opts.download, "download", false, "also download the first search result (needs a token)")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return 2
	}
	logger, err := logging.New(logging.Options{Level: level, Format: opts.logFormat, Output: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "fatal: %v\n", err)
		return 1
	}
	client := freesound.NewClient(cfg, logger)
	fmt.Fprintf(stdout, "Checking %s\n", cfg.BaseURL)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	token, results := resolveToken(ctx, client, opts, logger)

	firstID, searchResult := checkSearch(ctx, client, opts.searchText)
	results = append(results, searchResult)
	if firstID != 0 {
		results = append(results, checkSoundInstance(ctx, client, firstID))
	}
	results = append(results, checkDescriptors(ctx, client))

	if token != "" {
		results = append(results, checkMe(ctx, client, token))
		if opts.download && firstID != 0 {
			results = append(results, checkDownload(ctx, client, firstID, token))
		}
	}

	if failed := printReport(stdout, results); failed > 0 {
		return 1
	}
	return 0
}

func loadConfig(opts options) (freesound.Config, error) {
	cfg := freesound.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := freesound.LoadConfig(opts.configPath)
		if err != nil {
			return freesound.Config{}, err
		}
		cfg = loaded
	}

	if opts.apiKey != "" {
		cfg = cfg.WithAPIKey(opts.apiKey)
	}
	if cfg.ClientSecret == "" {
		key, err := freesound.LoadAPIKey()
		if err != nil {
			return freesound.Config{}, err
		}
		cfg = cfg.WithAPIKey(key)
	}
	if opts.baseURL != "" {
		cfg = cfg.WithBaseURL(opts.baseURL)
	}
	if opts.clientID != "" {
		cfg.ClientID = opts.clientID
	}
	if opts.rpm >= 0 {
		cfg = cfg.WithRateLimit(opts.rpm)
	}
	return cfg, cfg.Validate()
}

// resolveToken returns the access token for the authorised checks, from the
// flag or from the token store.
func resolveToken(ctx context.Context, client *freesound.Client, opts options, logger *slog.Logger) (string, []check) {
	if opts.accessToken != "" || opts.tokenDB == "" {
		return opts.accessToken, nil
	}

	const name = "Token store"
	if opts.tokenUser == "" {
		return "", []check{{Name: name, Detail: "-token-db needs -user"}}
	}

	store, err := tokenstore.NewSQLiteStore(opts.tokenDB, logger)
	if err != nil {
		return "", []check{{Name: name, Detail: err.Error()}}
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return "", []check{{Name: name, Detail: err.Error()}}
	}

	manager := freesound.NewTokenManager(client, store, logger)
	if opts.authCode != "" {
		if _, err := manager.Authorize(ctx, opts.tokenUser, opts.authCode); err != nil {
			return "", []check{{Name: "OAuth2 code exchange", Detail: err.Error()}}
		}
	}

	tok, err := manager.Token(ctx, opts.tokenUser)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, freesound.ErrTokenNotFound) {
			detail = fmt.Sprintf("no token stored for %q; pass -auth-code first", opts.tokenUser)
		}
		return "", []check{{Name: name, Detail: detail}}
	}
	return tok.AccessToken, []check{{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("token for %q valid until %s", opts.tokenUser, formatExpiry(tok.Expiry)),
	}}
}

func formatExpiry(t time.Time) string {
	if t.IsZero() {
		return "no expiry"
	}
	return t.Format(time.RFC3339)
}

func checkSearch(ctx context.Context, client *freesound.Client, text string) (int, check) {
	const name = "Text search"
	q := search.NewText(text)
	if err := q.SetPageSize(5); err != nil {
		return 0, check{Name: name, Detail: err.Error()}
	}
	q.IncludeFields("id", "name", "license")

	resp, err := freesound.Execute(ctx, client, q)
	if err == nil {
		err = freesound.CheckResponse(resp)
	}
	if err != nil {
		return 0, check{Name: name, Detail: err.Error()}
	}

	page := resp.Results()
	if len(page.Results) == 0 || page.Results[0].ID == nil {
		return 0, check{Name: name, Detail: fmt.Sprintf("no results for %q", text)}
	}
	total := len(page.Results)
	if page.Count != nil {
		total = *page.Count
	}
	return *page.Results[0].ID, check{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%d sounds match %q", total, text),
	}
}

func checkSoundInstance(ctx context.Context, client *freesound.Client, id int) check {
	name := fmt.Sprintf("Sound %d", id)
	resp, err := freesound.Execute(ctx, client, sound.NewInstance(id))
	if err == nil {
		err = freesound.CheckResponse(resp)
	}
	if err != nil {
		return check{Name: name, Detail: err.Error()}
	}
	s := resp.Results()
	return check{Name: name, Passed: true, Detail: fmt.Sprintf("%q by %s (%s)", s.Name, s.Username, s.License)}
}

func checkDescriptors(ctx context.Context, client *freesound.Client) check {
	const name = "Audio descriptors"
	resp, err := freesound.Execute(ctx, client, sound.NewDescriptors())
	if err == nil {
		err = freesound.CheckResponse(resp)
	}
	if err != nil {
		return check{Name: name, Detail: err.Error()}
	}
	d := resp.Results()
	n := len(d.FixedLengthOneDimensional) + len(d.FixedLengthMultiDimensional) + len(d.VariableLength)
	if n == 0 {
		return check{Name: name, Detail: "empty descriptor listing"}
	}
	return check{Name: name, Passed: true, Detail: fmt.Sprintf("%d descriptors", n)}
}

func checkMe(ctx context.Context, client *freesound.Client, token string) check {
	const name = "Authorised user"
	resp, err := freesound.Execute(ctx, client, user.NewMe(token))
	if err == nil {
		err = freesound.CheckResponse(resp)
	}
	if err != nil {
		return check{Name: name, Detail: err.Error()}
	}
	return check{Name: name, Passed: true, Detail: fmt.Sprintf("logged in as %s", resp.Results().Username)}
}

func checkDownload(ctx context.Context, client *freesound.Client, id int, token string) check {
	name := fmt.Sprintf("Download %d", id)
	n, err := freesound.DownloadTo(ctx, client, sound.NewDownload(id, token), io.Discard)
	if err != nil {
		return check{Name: name, Detail: err.Error()}
	}
	return check{Name: name, Passed: true, Detail: fmt.Sprintf("%d bytes", n)}
}

// printReport writes the report and returns the number of failed checks.
func printReport(w io.Writer, results []check) int {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Freesound API Verification Report")
	fmt.Fprintln(w, "=================================")

	passed, failed := 0, 0
	for _, r := range results {
		tag := "FAIL"
		if r.Passed {
			tag = "PASS"
			passed++
		} else {
			failed++
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", tag, r.Name, r.Detail)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d/%d passed", passed, len(results))
	if failed > 0 {
		fmt.Fprintf(w, ", %d failed", failed)
	}
	fmt.Fprintln(w)
	return failed
}
