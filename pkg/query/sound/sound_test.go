package sound

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/me/freesound/pkg/mapping"
	"github.com/me/freesound/pkg/model"
	"github.com/me/freesound/pkg/query"
)

func TestEndpoints(t *testing.T) {
	type endpoint interface {
		Method() string
		PathTemplate() string
		RouteParameters() map[string]string
	}
	rate, err := NewRate(7, 4, "tok")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		q      endpoint
		method string
		path   string
		route  map[string]string
	}{
		{"instance", NewInstance(7), http.MethodGet, "/sounds/{sound_id}/", map[string]string{"sound_id": "7"}},
		{"similar", NewSimilar(7), http.MethodGet, "/sounds/{sound_id}/similar/", map[string]string{"sound_id": "7"}},
		{"comments", NewComments(7), http.MethodGet, "/sounds/{sound_id}/comments/", map[string]string{"sound_id": "7"}},
		{"descriptors", NewDescriptors(), http.MethodGet, "/descriptors/", map[string]string{}},
		{"download", NewDownload(7, "tok"), http.MethodGet, "/sounds/{sound_id}/download/", map[string]string{"sound_id": "7"}},
		{"upload", NewUpload("/tmp/a.wav", "tok"), http.MethodPost, "/sounds/upload/", map[string]string{}},
		{"describe", NewDescribe("a.wav", "d", model.LicenseCC0, []string{"x"}, "tok"), http.MethodPost, "/sounds/describe/", map[string]string{}},
		{"edit", NewEditDescription(7, "tok"), http.MethodPost, "/sounds/{sound_id}/edit/", map[string]string{"sound_id": "7"}},
		{"pending uploads", NewPendingUploads("tok"), http.MethodGet, "/sounds/pending_uploads/", map[string]string{}},
		{"bookmark", NewBookmark(7, "tok"), http.MethodPost, "/sounds/{sound_id}/bookmark/", map[string]string{"sound_id": "7"}},
		{"rate", rate, http.MethodPost, "/sounds/{sound_id}/rate/", map[string]string{"sound_id": "7"}},
		{"comment", NewComment(7, "nice", "tok"), http.MethodPost, "/sounds/{sound_id}/comment/", map[string]string{"sound_id": "7"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.q.Method() != tt.method {
				t.Errorf("Method() = %q, want %q", tt.q.Method(), tt.method)
			}
			if tt.q.PathTemplate() != tt.path {
				t.Errorf("PathTemplate() = %q, want %q", tt.q.PathTemplate(), tt.path)
			}
			if diff := cmp.Diff(tt.route, tt.q.RouteParameters()); diff != "" {
				t.Errorf("RouteParameters() mismatch (-want +got):\n%s", diff)
			}
			if c, ok := tt.q.(query.Credentialed); ok && c.BearerToken() != "tok" {
				t.Errorf("BearerToken() = %q", c.BearerToken())
			}
		})
	}
}

func TestPublicEndpointsCarryNoToken(t *testing.T) {
	for _, q := range []any{NewInstance(1), NewSimilar(1), NewComments(1), NewDescriptors()} {
		if _, ok := q.(query.Credentialed); ok {
			t.Errorf("%T should not be credentialed", q)
		}
	}
}

func TestUpload_QueryParameters(t *testing.T) {
	q := NewUpload("/tmp/engine.wav", "tok").
		Name("Engine").
		Description("An engine idling").
		License(model.LicenseAttribution).
		Tags("first", "second tag", "first").
		Tags("tab\tseparated").
		Pack("Cars").
		Geotag(Geotag{Latitude: 41.4, Longitude: 2.1, Zoom: 14})

	want := map[string]any{
		AudioFileParam: query.File("/tmp/engine.wav"),
		"name":         "Engine",
		"description":  "An engine idling",
		"license":      "Attribution",
		"tags":         "first second-tag tab-separated",
		"pack":         "Cars",
		"geotag":       "41.4,2.1,14",
	}
	if diff := cmp.Diff(want, q.QueryParameters()); diff != "" {
		t.Errorf("QueryParameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestUpload_OnlySetFieldsAreSent(t *testing.T) {
	got := NewUpload("/tmp/a.wav", "tok").QueryParameters()
	want := map[string]any{AudioFileParam: query.File("/tmp/a.wav")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QueryParameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe_QueryParameters(t *testing.T) {
	q := NewDescribe("rain.wav", "Rain on a roof", model.LicenseCC0, []string{"rain", "field recording"}, "tok").Pack("Weather")
	want := map[string]any{
		"upload_filename": "rain.wav",
		"description":     "Rain on a roof",
		"license":         "Creative Commons 0",
		"tags":            "rain field-recording",
		"pack":            "Weather",
	}
	if diff := cmp.Diff(want, q.QueryParameters()); diff != "" {
		t.Errorf("QueryParameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestEditDescription_QueryParameters(t *testing.T) {
	q := NewEditDescription(12, "tok").Tags("second tag").License(model.LicenseAttributionNoncommercial)
	want := map[string]any{"tags": "second-tag", "license": "Attribution Noncommercial"}
	if diff := cmp.Diff(want, q.QueryParameters()); diff != "" {
		t.Errorf("QueryParameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewRate(t *testing.T) {
	for _, rating := range []int{0, 1, 5} {
		q, err := NewRate(1, rating, "tok")
		if err != nil {
			t.Fatalf("NewRate(%d) error = %v", rating, err)
		}
		if got := q.QueryParameters()["rating"]; got != query.FormatValue(rating) {
			t.Errorf("rating = %v", got)
		}
	}
	for _, rating := range []int{-1, 6, 100} {
		if _, err := NewRate(1, rating, "tok"); !errors.Is(err, query.ErrInvalidArgument) {
			t.Errorf("NewRate(%d) error = %v, want ErrInvalidArgument", rating, err)
		}
	}
}

func TestBookmark_QueryParameters(t *testing.T) {
	if got := NewBookmark(1, "tok").QueryParameters(); len(got) != 0 {
		t.Errorf("unnamed bookmark params = %v", got)
	}
	got := NewBookmark(1, "tok").Name("Engine").Category("Cars").QueryParameters()
	want := map[string]any{"name": "Engine", "category": "Cars"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("QueryParameters() mismatch (-want +got):\n%s", diff)
	}
}

func TestComment_QueryParameters(t *testing.T) {
	got := NewComment(1, "Great recording", "tok").QueryParameters()
	if got["comment"] != "Great recording" {
		t.Errorf("comment = %v", got["comment"])
	}
}

func TestDownload_ProcessResponse(t *testing.T) {
	q := NewDownload(1, "tok")
	resp := q.ProcessResponse(401, "Unauthorized", io.NopCloser(strings.NewReader(`{"detail":"Invalid token"}`)))
	if !resp.IsError() || resp.ErrorDetails() != "Invalid token" {
		t.Errorf("envelope = %d %q", resp.Status(), resp.ErrorDetails())
	}
}

func TestSimilar_ProcessResponse(t *testing.T) {
	q := NewSimilar(1)
	q.IncludeField("id")
	resp := q.ProcessResponse(200, "OK", mapping.Object{
		"count":   mapping.Object{}, // wrong shape is treated as absent
		"next":    "https://freesound.org/apiv2/sounds/1/similar/?page=2",
		"results": mapping.Array{mapping.Object{"id": 2}},
	})
	if resp.Results().Count != nil {
		t.Errorf("Count = %v, want nil", *resp.Results().Count)
	}
	if !q.HasNextPage() || q.HasPreviousPage() {
		t.Error("expected only a next page")
	}
	if len(resp.Results().Results) != 1 {
		t.Errorf("Results = %+v", resp.Results().Results)
	}
	if q.QueryParameters()["fields"] != "id" {
		t.Errorf("fields = %v", q.QueryParameters()["fields"])
	}
}

func TestGeotag_String(t *testing.T) {
	if got := (Geotag{Latitude: -33.8688, Longitude: 151.2093, Zoom: 10}).String(); got != "-33.8688,151.2093,10" {
		t.Errorf("String() = %q", got)
	}
}
