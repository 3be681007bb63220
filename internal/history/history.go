package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Author is recorded on every snapshot commit.
var Author = object.Signature{Name: "setpriority", Email: "setpriority@localhost"}

// Repo tracks the snapshot directory as a git repository
type Repo struct {
	Path string
	repo *git.Repository
}

// Open opens path as a repository. The result may not be a repository;
// check IsRepo.
func Open(path string) *Repo {
	r := &Repo{Path: path}
	repo, err := git.PlainOpen(path)
	if err == nil {
		r.repo = repo
	}
	return r
}

// Init opens path, initialising a repository there if needed
func Init(path string) (*Repo, error) {
	r := Open(path)
	if r.IsRepo() {
		return r, nil
	}

	repo, err := git.PlainInit(path, false)
	if err != nil {
		return nil, fmt.Errorf("init history at %s: %w", path, err)
	}
	r.repo = repo
	return r, nil
}

// IsRepo checks if the path is a git repository
func (r *Repo) IsRepo() bool {
	return r.repo != nil
}

// Commit stages the given files (relative to Path) and commits them
func (r *Repo) Commit(message string, files ...string) error {
	if r.repo == nil {
		return fmt.Errorf("not a git repository")
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return err
	}

	for _, file := range files {
		if _, err := worktree.Add(file); err != nil {
			return err
		}
	}

	sig := Author
	sig.When = time.Now()
	_, err = worktree.Commit(message, &git.CommitOptions{Author: &sig})
	return err
}

// CommitInfo holds commit information
type CommitInfo struct {
	Hash    string
	Message string
	Date    string
}

// Log returns up to count recent commits, newest first
func (r *Repo) Log(count int) ([]CommitInfo, error) {
	if r.repo == nil {
		return nil, fmt.Errorf("not a git repository")
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, err
	}

	commitIter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}

	var commits []CommitInfo
	err = commitIter.ForEach(func(c *object.Commit) error {
		if len(commits) >= count {
			return storer.ErrStop
		}
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String()[:7],
			Message: strings.Split(c.Message, "\n")[0],
			Date:    c.Author.When.Format("2006-01-02 15:04"),
		})
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return commits, nil
}
