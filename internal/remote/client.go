package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gopak/gopak-query/internal/pkg"
)

// ErrRemote is returned for errors reported by the RPC endpoint itself.
var ErrRemote = errors.New("remote repository error")

// maxInfoArgs bounds the number of names sent in a single info request.
const maxInfoArgs = 150

type rpcPackage struct {
	ID             int      `json:"ID"`
	Name           string   `json:"Name"`
	PackageBase    string   `json:"PackageBase"`
	Version        string   `json:"Version"`
	Description    string   `json:"Description"`
	URL            string   `json:"URL"`
	NumVotes       int      `json:"NumVotes"`
	Popularity     float64  `json:"Popularity"`
	OutOfDate      *int64   `json:"OutOfDate"`
	Maintainer     *string  `json:"Maintainer"`
	FirstSubmitted int64    `json:"FirstSubmitted"`
	LastModified   int64    `json:"LastModified"`
	License        []string `json:"License"`
	Keywords       []string `json:"Keywords"`
	Depends        []string `json:"Depends"`
	OptDepends     []string `json:"OptDepends"`
	Provides       []string `json:"Provides"`
	Conflicts      []string `json:"Conflicts"`
	Replaces       []string `json:"Replaces"`
}

type rpcResponse struct {
	Version     int          `json:"version"`
	Type        string       `json:"type"`
	ResultCount int          `json:"resultcount"`
	Results     []rpcPackage `json:"results"`
	Error       string       `json:"error"`
}

// Client talks to an AUR-compatible RPC endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	name       string
}

// NewClient returns a client for the repository at baseURL. name labels the
// packages it returns and defaults to "aur".
func NewClient(baseURL, name string, timeout time.Duration) *Client {
	if name == "" {
		name = pkg.RepoAUR
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		name:       name,
	}
}

// Name is the repository label, e.g. "aur".
func (c *Client) Name() string { return c.name }

// Search returns the packages whose name or description contains term.
func (c *Client) Search(ctx context.Context, term string) ([]*pkg.Remote, error) {
	q := url.Values{}
	q.Set("v", "5")
	q.Set("type", "search")
	q.Set("arg", term)
	return c.call(ctx, q)
}

// Info returns the packages named in names. Unknown names are skipped.
func (c *Client) Info(ctx context.Context, names []string) ([]*pkg.Remote, error) {
	var out []*pkg.Remote
	for start := 0; start < len(names); start += maxInfoArgs {
		end := min(start+maxInfoArgs, len(names))
		q := url.Values{}
		q.Set("v", "5")
		q.Set("type", "info")
		for _, n := range names[start:end] {
			q.Add("arg[]", n)
		}
		res, err := c.call(ctx, q)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

func (c *Client) call(ctx context.Context, q url.Values) ([]*pkg.Remote, error) {
	u := c.baseURL + "/rpc/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %d %s", ErrRemote, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", q.Get("type"), err)
	}
	if r.Type == "error" || r.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrRemote, r.Error)
	}
	out := make([]*pkg.Remote, 0, len(r.Results))
	for _, p := range r.Results {
		out = append(out, p.toPackage(c.name))
	}
	return out, nil
}

func (p rpcPackage) toPackage(repo string) *pkg.Remote {
	r := &pkg.Remote{
		Repo:        repo,
		ID:          p.ID,
		Name:        p.Name,
		PackageBase: p.PackageBase,
		Version:     p.Version,
		Description: p.Description,
		URL:         p.URL,
		Votes:       p.NumVotes,
		Popularity:  p.Popularity,
		Licenses:    p.License,
		Keywords:    p.Keywords,
		Depends:     p.Depends,
		OptDepends:  p.OptDepends,
		Provides:    p.Provides,
		Conflicts:   p.Conflicts,
		Replaces:    p.Replaces,
	}
	if p.OutOfDate != nil {
		r.OutOfDate = *p.OutOfDate
	}
	if p.Maintainer != nil {
		r.Maintainer = *p.Maintainer
	}
	if p.FirstSubmitted > 0 {
		r.FirstSubmit = time.Unix(p.FirstSubmitted, 0)
	}
	if p.LastModified > 0 {
		r.LastModify = time.Unix(p.LastModified, 0)
	}
	return r
}
