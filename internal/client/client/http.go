package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flashly/flashly/internal/client/models"
	"github.com/flashly/flashly/internal/common"
	"github.com/flashly/flashly/internal/logging"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// jwtCookieName is where the server puts the token when it answers login
// with a cookie instead of a JSON body.
const jwtCookieName = "access_token_cookie"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) { h.http = c }
}

func WithLogger(l logging.Logger) HTTPOption {
	return func(h *HTTPClient) { h.logger = l }
}

// NewHTTPClient builds a REST client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, opts ...HTTPOption) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server address %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server address %q: scheme must be http or https", baseURL)
	}
	if tokens == nil {
		tokens = &TokenHolder{}
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) endpoint(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return c.baseURL.String() + "/" + strings.Join(escaped, "/")
}

// do sends one request and decodes a 2xx JSON body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, target string, body io.Reader, contentType string, out any) (*http.Response, error) {
	reqID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate request id: %w", err)
	}
	ctx = logging.WithRequestID(ctx, reqID)

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	log := c.logger.With("method", method, "path", req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w: %w", method, req.URL.Path, ErrTransport, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "request completed", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp, &RemoteError{
			Status:    resp.StatusCode,
			Message:   remoteErrorMessage(resp.StatusCode, raw),
			RequestID: reqID,
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp, fmt.Errorf("decode %s %s response: %w", method, req.URL.Path, err)
		}
	}
	return resp, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, target string, in, out any) (*http.Response, error) {
	if in == nil {
		return c.do(ctx, method, target, nil, "", out)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, method, target, bytes.NewReader(b), "application/json", out)
}

// Ping succeeds on any HTTP response: it only tells reachable from not.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, c.baseURL.String()+"/", nil, "", nil)
	var re *RemoteError
	if errors.As(err, &re) {
		return nil
	}
	return err
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (models.Profile, error) {
	var p models.Profile
	_, err := c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "register"), creds, &p)
	return p, err
}

// Login returns the access token from the response body, or from the JWT
// cookie when the body has none.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (string, error) {
	body := models.Credentials{Email: creds.Email, Password: creds.Password}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	var raw json.RawMessage
	resp, err := c.do(ctx, http.MethodPost, c.endpoint("auth", "login"), bytes.NewReader(b), "application/json", &raw)
	if err != nil {
		return "", err
	}

	var lr loginResponse
	_ = json.Unmarshal(raw, &lr)
	switch {
	case lr.AccessToken != "":
		return lr.AccessToken, nil
	case lr.Token != "":
		return lr.Token, nil
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == jwtCookieName && ck.Value != "" {
			return ck.Value, nil
		}
	}
	return "", ErrNoAccessToken
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, c.endpoint("auth", "logout"), nil, "", nil)
	return err
}

func (c *HTTPClient) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	_, err := c.do(ctx, http.MethodGet, c.endpoint("auth", "profile"), nil, "", &p)
	return p, err
}

func (c *HTTPClient) ListStudySets(ctx context.Context) ([]models.StudySet, error) {
	var sets []models.StudySet
	if _, err := c.do(ctx, http.MethodGet, c.endpoint("studysets")+"/", nil, "", &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

func (c *HTTPClient) CreateStudySet(ctx context.Context, draft models.StudySetDraft) (models.StudySet, error) {
	var s models.StudySet
	_, err := c.doJSON(ctx, http.MethodPost, c.endpoint("studysets")+"/", draft.Normalize(), &s)
	return s, err
}

func (c *HTTPClient) GetStudySet(ctx context.Context, id models.ServerID) (models.StudySetDetail, error) {
	var r studySetDetailResponse
	if _, err := c.do(ctx, http.MethodGet, c.endpoint("studysets", string(id)), nil, "", &r); err != nil {
		return models.StudySetDetail{}, err
	}
	r.StudySet.CardCount = len(r.Flashcards)
	return models.StudySetDetail{StudySet: r.StudySet, Flashcards: models.FromRemote(r.Flashcards)}, nil
}

func (c *HTTPClient) UpdateStudySet(ctx context.Context, id models.ServerID, draft models.StudySetDraft) (models.StudySet, error) {
	var s models.StudySet
	_, err := c.doJSON(ctx, http.MethodPut, c.endpoint("studysets", string(id)), draft.Normalize(), &s)
	return s, err
}

func (c *HTTPClient) DeleteStudySet(ctx context.Context, id models.ServerID) error {
	_, err := c.do(ctx, http.MethodDelete, c.endpoint("studysets", string(id)), nil, "", nil)
	return err
}

// SyncFlashcards sends the bulk update and returns the canonical collection.
func (c *HTTPClient) SyncFlashcards(ctx context.Context, setID models.ServerID, changes models.ChangeSet) ([]models.Flashcard, error) {
	var r flashcardsResponse
	if _, err := c.doJSON(ctx, http.MethodPut, c.endpoint("studysets", string(setID), "flashcards"), changes, &r); err != nil {
		return nil, err
	}
	return models.FromRemote(r.Flashcards), nil
}

func (c *HTTPClient) CreateFlashcards(ctx context.Context, setID models.ServerID, drafts []models.FlashcardDraft) ([]models.Flashcard, error) {
	var r flashcardsResponse
	req := createFlashcardsRequest{Flashcards: drafts}
	if _, err := c.doJSON(ctx, http.MethodPost, c.endpoint("studysets", string(setID), "flashcards"), req, &r); err != nil {
		return nil, err
	}
	return models.FromRemote(r.Flashcards), nil
}

// PreviewFlashcards uploads a document as multipart field "file".
func (c *HTTPClient) PreviewFlashcards(ctx context.Context, setID models.ServerID, fileName string, r io.Reader) (models.GeneratedPreview, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return models.GeneratedPreview{}, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return models.GeneratedPreview{}, fmt.Errorf("read %s: %w", fileName, err)
	}
	if err := mw.Close(); err != nil {
		return models.GeneratedPreview{}, fmt.Errorf("build upload: %w", err)
	}

	var p models.GeneratedPreview
	target := c.endpoint("studysets", string(setID), "flashcards", "preview")
	if _, err := c.do(ctx, http.MethodPost, target, &buf, mw.FormDataContentType(), &p); err != nil {
		return models.GeneratedPreview{}, err
	}
	if p.SourceFileName == "" {
		p.SourceFileName = fileName
	}
	return p, nil
}

func (c *HTTPClient) SavePreview(ctx context.Context, setID models.ServerID, req models.SavePreviewRequest) ([]models.Flashcard, error) {
	var r flashcardsResponse
	target := c.endpoint("studysets", string(setID), "flashcards", "save-preview")
	if _, err := c.doJSON(ctx, http.MethodPost, target, req, &r); err != nil {
		return nil, err
	}
	return models.FromRemote(r.Flashcards), nil
}
