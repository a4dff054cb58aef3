package fakeapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	page := intParam(r, "page", 1)
	size := intParam(r, "page_size", 15)
	if page < 1 || size < 1 {
		respondDetail(w, http.StatusBadRequest, "Invalid page.")
		return
	}

	first := (page-1)*size + 1
	if first > SoundCount && page > 1 {
		respondDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	results := []map[string]any{}
	for id := first; id <= SoundCount && id < first+size; id++ {
		results = append(results, fakeSound(s.BaseURL(), id))
	}

	pageURL := func(p int) any {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(p))
		return s.BaseURL() + "/search/text/?" + q.Encode()
	}
	var next, previous any
	if page*size < SoundCount {
		next = pageURL(page + 1)
	}
	if page > 1 {
		previous = pageURL(page - 1)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    SoundCount,
		"next":     next,
		"previous": previous,
		"results":  results,
	})
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	id, ok := soundID(r)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	respondJSON(w, http.StatusOK, fakeSound(s.BaseURL(), id))
}

func (s *Server) handleDescriptors(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"fixed-length": map[string]any{
			"one-dimensional":   []string{"lowlevel.spectral_centroid.mean", "lowlevel.average_loudness"},
			"multi-dimensional": []string{"lowlevel.mfcc.mean"},
		},
		"variable-length": []string{"rhythm.beats_position"},
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"username":    "someone",
		"email":       "someone@example.com",
		"unique_id":   7761,
		"date_joined": "2008-08-07T17:39:00",
		"num_sounds":  SoundCount,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "sound_id") == strconv.Itoa(BrokenDownloadID) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusGone)
		io.WriteString(w, "<html><body>Gone</body></html>")
		return
	}
	id, ok := soundID(r)
	if !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	fmt.Fprintf(w, "RIFF-fake-audio-%d", id)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondDetail(w, http.StatusBadRequest, "Expected multipart form data.")
		return
	}
	file, header, err := r.FormFile("audiofile")
	if err != nil {
		respondDetail(w, http.StatusBadRequest, "No audiofile provided.")
		return
	}
	defer file.Close()
	if _, err := io.Copy(io.Discard, file); err != nil {
		respondDetail(w, http.StatusBadRequest, "Unreadable audiofile.")
		return
	}

	body := map[string]any{
		"detail":   "Audio file successfully uploaded (now pending description)",
		"filename": header.Filename,
	}
	if r.FormValue("description") != "" {
		body["detail"] = "Audio file successfully uploaded and described (now pending processing)"
		body["id"] = SoundCount + 1
	}
	respondJSON(w, http.StatusCreated, body)
}

func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	if _, ok := soundID(r); !ok {
		respondDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	rating, err := strconv.Atoi(r.PostFormValue("rating"))
	if err != nil || rating < 0 || rating > 5 {
		respondDetail(w, http.StatusBadRequest, "Invalid rating.")
		return
	}
	respondDetail(w, http.StatusCreated, "Successfully rated sound.")
}

func (s *Server) handleAccessToken(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	hold := s.tokenHold
	s.mu.Unlock()
	if hold != nil {
		select {
		case <-hold:
		case <-r.Context().Done():
			return
		}
	}

	if r.PostFormValue("client_id") != ClientID || r.PostFormValue("client_secret") != APIKey {
		respondDetail(w, http.StatusUnauthorized, "Invalid client credentials.")
		return
	}

	var access string
	switch r.PostFormValue("grant_type") {
	case "authorization_code":
		if r.PostFormValue("code") != AuthCode {
			respondDetail(w, http.StatusBadRequest, "Invalid grant.")
			return
		}
		access = AccessToken
	case "refresh_token":
		if r.PostFormValue("refresh_token") != RefreshToken {
			respondDetail(w, http.StatusBadRequest, "Invalid grant.")
			return
		}
		access = RefreshedAccessToken
	default:
		respondDetail(w, http.StatusBadRequest, "Unsupported grant type.")
		return
	}

	s.mu.Lock()
	s.tokenIssues++
	s.validTokens[access] = true
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, map[string]any{
		"access_token":  access,
		"scope":         "read write",
		"expires_in":    86399,
		"refresh_token": RefreshToken,
	})
}

func intParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
