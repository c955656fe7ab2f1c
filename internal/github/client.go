package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/bartekus/prgate/internal/commitmsg"
)

var logger = log.WithField("package", "github")

// Client wraps the GitHub API for pull-request commit listing.
type Client struct {
	client *github.Client
}

// NewClient authenticates from GH_TOKEN or GITHUB_TOKEN.
func NewClient() (*Client, error) {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not found. Set GH_TOKEN or GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	return &Client{client: github.NewClient(tc)}, nil
}

// PullRequestCommits lists every commit of a pull request, paging
// through the API so large PRs are fully enumerated.
func (c *Client) PullRequestCommits(ctx context.Context, repo string, number int) ([]commitmsg.Commit, error) {
	owner, name, err := ParseOwnerRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}
	var commits []commitmsg.Commit
	for {
		page, resp, err := c.client.PullRequests.ListCommits(ctx, owner, name, number, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits for %s#%d: %w", repo, number, err)
		}
		commits = append(commits, convertCommits(page)...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logger.WithFields(log.Fields{
		"repo":    repo,
		"pr":      number,
		"commits": len(commits),
	}).Debug("fetched pull request commits")

	return commits, nil
}

// Source adapts the client to the runner's commit source shape.
type Source struct {
	Client *Client
	Repo   string
	Number int
}

func (s Source) Commits(ctx context.Context) ([]commitmsg.Commit, error) {
	return s.Client.PullRequestCommits(ctx, s.Repo, s.Number)
}

// ParseOwnerRepo splits "owner/repo".
func ParseOwnerRepo(repo string) (string, string, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/repo", repo)
	}
	return parts[0], parts[1], nil
}

func convertCommits(page []*github.RepositoryCommit) []commitmsg.Commit {
	out := make([]commitmsg.Commit, 0, len(page))
	for _, rc := range page {
		hash := rc.GetSHA()
		if len(hash) > 7 {
			hash = hash[:7]
		}
		out = append(out, commitmsg.Commit{
			Hash:    hash,
			Message: rc.GetCommit().GetMessage(),
		})
	}
	return out
}
