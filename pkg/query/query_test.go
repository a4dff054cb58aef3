package query

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
)

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name     string
		template string
		route    map[string]string
		want     string
		wantErr  error
	}{
		{"no placeholders", "/search/text/", nil, "/search/text/", nil},
		{"one placeholder", "/sounds/{sound_id}/", map[string]string{"sound_id": "1234"}, "/sounds/1234/", nil},
		{
			"two placeholders",
			"/users/{username}/bookmark_categories/{bookmark_category_id}/sounds/",
			map[string]string{"username": "someone", "bookmark_category_id": "0"},
			"/users/someone/bookmark_categories/0/sounds/",
			nil,
		},
		{"escaped value", "/users/{username}/", map[string]string{"username": "a b/c"}, "/users/a%20b%2Fc/", nil},
		{"missing value", "/sounds/{sound_id}/", map[string]string{}, "", ErrMissingRouteParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.template, tt.route)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ExpandPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandPath() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandPath_Unterminated(t *testing.T) {
	if _, err := ExpandPath("/sounds/{sound_id/", map[string]string{"sound_id": "1"}); err == nil {
		t.Error("expected error for unterminated placeholder")
	}
}

func TestJSON_ProcessResponse(t *testing.T) {
	q := NewJSON[string](http.MethodGet, "/me/", mapping.Func[mapping.Object, string](func(o mapping.Object) string {
		return mapping.String(o, "username")
	}))

	ok := q.ProcessResponse(200, "OK", mapping.Object{"username": "someone"})
	if ok.IsError() || ok.Results() != "someone" || ok.ErrorDetails() != "" {
		t.Errorf("success envelope = %+v", ok)
	}

	failed := q.ProcessResponse(401, "Unauthorized", mapping.Object{"detail": "Authentication credentials were not provided."})
	if !failed.IsError() || failed.Results() != "" {
		t.Errorf("error envelope results = %q", failed.Results())
	}
	if failed.ErrorDetails() != "Authentication credentials were not provided." {
		t.Errorf("ErrorDetails() = %q", failed.ErrorDetails())
	}
	if failed.Status() != 401 || failed.StatusText() != "Unauthorized" {
		t.Errorf("status line = %d %q", failed.Status(), failed.StatusText())
	}
}

func TestJSON_ErrorDetailFallbacks(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		statusText string
		body       mapping.Object
		want       string
	}{
		{"detail", 404, "Not Found", mapping.Object{"detail": "Not found.", "error": "ignored"}, "Not found."},
		{"oauth2 description", 400, "Bad Request", mapping.Object{"error": "invalid_grant", "error_description": "Invalid code."}, "Invalid code."},
		{"oauth2 error code", 400, "Bad Request", mapping.Object{"error": "invalid_grant"}, "invalid_grant"},
		{"no message", 502, "Bad Gateway", mapping.Object{}, "Bad Gateway"},
		{"no message or status text", 503, "", mapping.Object{"detail": nil}, "Service Unavailable"},
	}

	q := NewJSON[string](http.MethodPost, "/oauth2/access_token/", mapping.DetailString{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := q.ProcessResponse(tt.status, tt.statusText, tt.body)
			if got.ErrorDetails() != tt.want {
				t.Errorf("ErrorDetails() = %q, want %q", got.ErrorDetails(), tt.want)
			}
		})
	}
}

func TestBinaryErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body io.Reader
		want string
	}{
		{"detail", strings.NewReader(`{"detail":"An error occured"}`), "An error occured"},
		{"not json", strings.NewReader(`<html><body>Bad Gateway</body></html>`), MessageNonJSONError},
		{"json without detail", strings.NewReader(`{"error":"nope"}`), MessageNonJSONError},
		{"json array", strings.NewReader(`["detail"]`), MessageNonJSONError},
		{"read failure", iotest.ErrReader(errors.New("connection reset")), MessageUnreadableError},
		{"invalid utf-8", strings.NewReader("\xff\xfe{}"), MessageUnreadableError},
		{"nil body", nil, MessageUnreadableError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BinaryErrorMessage(tt.body); got != tt.want {
				t.Errorf("BinaryErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinary_ProcessResponse(t *testing.T) {
	q := NewBinary("/sounds/{sound_id}/download/")
	if q.Method() != http.MethodGet {
		t.Errorf("Method() = %q", q.Method())
	}

	body := io.NopCloser(strings.NewReader("RIFF...."))
	ok := q.ProcessResponse(200, "OK", body)
	if ok.Results() != body {
		t.Error("success body should be passed through unchanged")
	}

	failed := q.ProcessResponse(404, "Not Found", io.NopCloser(strings.NewReader(`{"detail":"Not found."}`)))
	if failed.Results() != nil {
		t.Error("error envelope should carry no stream")
	}
	if failed.ErrorDetails() != "Not found." {
		t.Errorf("ErrorDetails() = %q", failed.ErrorDetails())
	}
}

func newTestPaging() *Paging[model.Comment] {
	p := NewPaging[model.Comment]("/sounds/{sound_id}/comments/", mapping.CommentMapper{}, func() map[string]any {
		return map[string]any{"page": 99, "extra": "x"}
	})
	return &p
}

func TestPaging_Defaults(t *testing.T) {
	p := newTestPaging()
	if p.Page() != 1 || p.PageSize() != DefaultPageSize {
		t.Errorf("defaults = page %d size %d", p.Page(), p.PageSize())
	}
	want := map[string]any{"page": 1, "page_size": DefaultPageSize, "extra": "x"}
	if diff := cmp.Diff(want, p.QueryParameters()); diff != "" {
		t.Errorf("QueryParameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestPaging_SetPageSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		want    int
		wantErr bool
	}{
		{"one", 1, 1, false},
		{"maximum", 150, 150, false},
		{"above maximum is clamped", 151, 150, false},
		{"far above maximum", 10000, 150, false},
		{"zero", 0, DefaultPageSize, true},
		{"negative", -3, DefaultPageSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPaging()
			err := p.SetPageSize(tt.size)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("SetPageSize(%d) error = %v, want ErrInvalidArgument", tt.size, err)
				}
			} else if err != nil {
				t.Fatalf("SetPageSize(%d) error = %v", tt.size, err)
			}
			if p.PageSize() != tt.want {
				t.Errorf("PageSize() = %d, want %d", p.PageSize(), tt.want)
			}
		})
	}
}

func TestPaging_SetPage(t *testing.T) {
	p := newTestPaging()
	if err := p.SetPage(0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetPage(0) error = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetPage(-1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetPage(-1) error = %v, want ErrInvalidArgument", err)
	}
	if err := p.SetPage(1); err != nil || p.Page() != 1 {
		t.Errorf("SetPage(1) = %v, page %d", err, p.Page())
	}
	if err := p.SetPage(7); err != nil || p.QueryParameters()["page"] != 7 {
		t.Errorf("SetPage(7) = %v, params %v", err, p.QueryParameters())
	}
}

func TestPaging_Navigation(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         mapping.Object
		wantNext     bool
		wantPrevious bool
	}{
		{"next only", 200, mapping.Object{"next": "n", "previous": nil, "results": mapping.Array{}}, true, false},
		{"both", 200, mapping.Object{"next": "n", "previous": "p", "results": mapping.Array{}}, true, true},
		{"neither", 200, mapping.Object{"next": nil, "previous": nil, "results": mapping.Array{}}, false, false},
		{"previous only", 200, mapping.Object{"previous": "p"}, false, true},
		{"error response", 404, mapping.Object{"detail": "Not found."}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPaging()
			if p.HasNextPage() || p.HasPreviousPage() || p.LastResponse() != nil {
				t.Fatal("unexecuted query must report no navigation")
			}
			resp := p.ProcessResponse(tt.status, "", tt.body)
			if p.LastResponse() != resp {
				t.Error("LastResponse() should return the latest envelope")
			}
			if got := p.HasNextPage(); got != tt.wantNext {
				t.Errorf("HasNextPage() = %v, want %v", got, tt.wantNext)
			}
			if got := p.HasPreviousPage(); got != tt.wantPrevious {
				t.Errorf("HasPreviousPage() = %v, want %v", got, tt.wantPrevious)
			}
		})
	}
}

func TestSoundPaging_Fields(t *testing.T) {
	s := NewSoundPaging("/search/text/", nil)
	if _, ok := s.QueryParameters()["fields"]; ok {
		t.Error("fields should be omitted when none were requested")
	}

	s.IncludeField("id")
	s.IncludeFields("name", "id", "previews")
	s.IncludeField("name")

	if diff := cmp.Diff([]string{"id", "name", "previews"}, s.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
	if got := s.QueryParameters()["fields"]; got != "id,name,previews" {
		t.Errorf("fields = %v, want %q", got, "id,name,previews")
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"abc", "abc"},
		{File("/tmp/a.wav"), "/tmp/a.wav"},
		{SortCreatedAsc, "created_asc"},
		{15, "15"},
		{int64(5368709120), "5368709120"},
		{float32(0.1), "0.1"},
		{41.4, "41.4"},
		{true, "1"},
		{false, "0"},
		{model.LicenseCC0, "Creative Commons 0"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSet(t *testing.T) {
	var s Set
	if s.Len() != 0 || s.Join(" ") != "" {
		t.Fatal("zero Set should be empty")
	}
	s.Add("b", "a", "b")
	s.Add("c")
	if s.Len() != 3 || s.Join(" ") != "b a c" {
		t.Errorf("Set = %v", s.Values())
	}
}
