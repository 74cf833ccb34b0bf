package tools

import (
	"fmt"

	"github.com/ModOrganizer2/mob/internal/tx"
)

// TransifexOperation selects which translation-service operation to run.
type TransifexOperation int

const (
	TransifexInit TransifexOperation = iota
	TransifexConfigure
	TransifexPull
)

// TransifexTool adapts the tx.Client into the uniform tool contract.
type TransifexTool struct {
	BaseTool

	Client    *tx.Client
	Operation TransifexOperation
	Root      string
	Resource  tx.Resource
	Lang      string
	DestFile  string
}

func (t *TransifexTool) Name() string { return "transifex" }

func (t *TransifexTool) Run(tc *Context) error {
	if tc.DryRun {
		tc.Log.Infof("[dry-run] transifex op=%d root=%s", t.Operation, t.Root)
		return nil
	}
	switch t.Operation {
	case TransifexInit:
		return t.Client.Init(t.Root)
	case TransifexConfigure:
		return t.Client.Configure(t.Root, t.Resource)
	case TransifexPull:
		return t.Client.Pull(t.Root, t.Resource.Slug, t.Lang, t.DestFile)
	default:
		return fmt.Errorf("transifex: unknown operation")
	}
}
