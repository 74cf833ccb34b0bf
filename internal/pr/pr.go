// Package pr implements the GitHub PR client (C14): inspecting, applying,
// and reverting a pull request's commits against a local checkout, used by
// the `pr` command surface. Grounded on the
// pack's use of google/go-github (no teacher precedent; lazydocker has no
// GitHub API client). Token resolution takes an explicit token first, then
// MOB_GITHUB_TOKEN, then the conventional GITHUB_TOKEN, matching the env-fallback convention this
// module uses elsewhere (e.g. internal/tx's TX_API_KEY).
package pr

import (
	"context"
	"fmt"
	"os"

	"github.com/google/go-github/v74/github"
	"github.com/sirupsen/logrus"

	moberrors "github.com/ModOrganizer2/mob/internal/errors"
	"github.com/ModOrganizer2/mob/internal/git"
)

// Client wraps the GitHub REST client for pull-request inspection.
type Client struct {
	GH    *github.Client
	Log   *logrus.Entry
	Owner string
	Repo  string
}

func resolveToken(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv("MOB_GITHUB_TOKEN"); v != "" {
		return v
	}
	return os.Getenv("GITHUB_TOKEN")
}

func NewClient(token, owner, repo string, log *logrus.Entry) *Client {
	gh := github.NewClient(nil)
	if t := resolveToken(token); t != "" {
		gh = gh.WithAuthToken(t)
	}
	return &Client{GH: gh, Log: log, Owner: owner, Repo: repo}
}

// Info is a minimal view of a pull request sufficient for the apply/revert
// workflow: head ref, head SHA, and base ref to revert back onto.
type Info struct {
	Number  int
	HeadRef string
	HeadSHA string
	BaseRef string
	Title   string
}

// Inspect fetches pull request metadata by number.
func (c *Client) Inspect(ctx context.Context, number int) (*Info, error) {
	pull, _, err := c.GH.PullRequests.Get(ctx, c.Owner, c.Repo, number)
	if err != nil {
		return nil, moberrors.Network(fmt.Sprintf("failed to fetch PR #%d", number), err)
	}
	return &Info{
		Number:  pull.GetNumber(),
		HeadRef: pull.GetHead().GetRef(),
		HeadSHA: pull.GetHead().GetSHA(),
		BaseRef: pull.GetBase().GetRef(),
		Title:   pull.GetTitle(),
	}, nil
}

// Find lists open pull requests against the configured upstream repository.
func (c *Client) Find(ctx context.Context) ([]*Info, error) {
	pulls, _, err := c.GH.PullRequests.List(ctx, c.Owner, c.Repo, &github.PullRequestListOptions{State: "open"})
	if err != nil {
		return nil, moberrors.Network("failed to list open pull requests", err)
	}
	out := make([]*Info, 0, len(pulls))
	for _, pull := range pulls {
		out = append(out, &Info{
			Number:  pull.GetNumber(),
			HeadRef: pull.GetHead().GetRef(),
			HeadSHA: pull.GetHead().GetSHA(),
			BaseRef: pull.GetBase().GetRef(),
			Title:   pull.GetTitle(),
		})
	}
	return out, nil
}

// Apply checks out the PR's head ref into path via the VCS mutator, fetching
// the pull/<number>/head ref first since PR branches often live outside the
// default remote refspec.
func (c *Client) Apply(ctx context.Context, mutator git.Mutator, path string, number int) error {
	ref := fmt.Sprintf("pull/%d/head", number)
	if err := mutator.Fetch(ctx, path); err != nil {
		return err
	}
	return mutator.Checkout(ctx, path, ref)
}

// Revert checks the working tree back onto baseRef, undoing Apply.
func (c *Client) Revert(ctx context.Context, mutator git.Mutator, path, baseRef string) error {
	return mutator.Checkout(ctx, path, baseRef)
}
