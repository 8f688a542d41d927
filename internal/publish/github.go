package publish

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/intervals-sync/internal/telemetry/tracing"
	"github.com/2beens/intervals-sync/pkg"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultGitHubAPIBaseURL = "https://api.github.com"

// GitHub publishes documents as commits to a repository via the
// contents API. Each Publish call updates a single file on the
// configured branch.
type GitHub struct {
	apiBaseURL string
	repo       string
	branch     string
	token      string
	httpClient *http.Client
}

func NewGitHub(
	apiBaseURL string,
	repo string,
	branch string,
	token string,
	httpClient *http.Client,
) *GitHub {
	return &GitHub{
		apiBaseURL: apiBaseURL,
		repo:       repo,
		branch:     branch,
		token:      token,
		httpClient: httpClient,
	}
}

func (g *GitHub) Publish(ctx context.Context, doc any, path, message string) (location string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "publisher.github")
	span.SetAttributes(attribute.String("path", path))
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	content, err := EncodeDocument(doc)
	if err != nil {
		return "", err
	}

	contentsURL := fmt.Sprintf("%s/repos/%s/contents/%s", g.apiBaseURL, g.repo, path)

	putPayload := contentsPutRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Branch:  g.branch,
		SHA:     g.currentSHA(ctx, contentsURL),
	}
	payloadBytes, err := json.Marshal(putPayload)
	if err != nil {
		return "", fmt.Errorf("marshal contents payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, contentsURL, bytes.NewReader(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	g.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("put contents: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Errorf("put contents, close response body: %s", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("put contents, read error response: %w", err)
		}
		return "", &PublishError{
			Destination: "github",
			Path:        path,
			StatusCode:  resp.StatusCode,
			Body:        pkg.BytesToString(bytes.TrimSpace(respBytes)),
		}
	}

	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", g.repo, g.branch, path), nil
}

// currentSHA fetches the blob SHA of the file at contentsURL. The
// contents API requires it for updates and rejects it for creates, so
// a missing file simply yields an empty string.
func (g *GitHub) currentSHA(ctx context.Context, contentsURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, contentsURL+"?ref="+g.branch, nil)
	if err != nil {
		log.Debugf("get current sha, create request: %s", err)
		return ""
	}
	g.setHeaders(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Debugf("get current sha: %s", err)
		return ""
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Errorf("get current sha, close response body: %s", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		log.Debugf("get current sha: status %d, assuming new file", resp.StatusCode)
		return ""
	}

	var contents struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&contents); err != nil {
		log.Debugf("get current sha, decode response: %s", err)
		return ""
	}
	return contents.SHA
}

func (g *GitHub) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
}

type contentsPutRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}
