// Package cli implements the recordsync client commands on top of sync.Service.
package cli

import (
	"github.com/iudanet/recordsync/internal/client/iocli"
	"github.com/iudanet/recordsync/internal/client/sync"
)

type Cli struct {
	io          iocli.IO
	syncService sync.Service
	output      Format
}

func New(io iocli.IO, syncService sync.Service, output Format) *Cli {
	return &Cli{
		io:          io,
		syncService: syncService,
		output:      output,
	}
}
