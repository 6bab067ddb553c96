// Command secretreader prints secrets stored in AWS Secrets Manager.
//
//	secretreader get prod/db
//	secretreader key prod/db db_password
//	secretreader key prod/db            # whole JSON document
//
// Exit status is 0 on success, 2 when the secret or key does not exist and
// 1 on any other failure.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	srerrors "github.com/cloudperiscope/secretreader/errors"
	"github.com/cloudperiscope/secretreader/services/aws/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch secrets.CodeOf(err) {
	case srerrors.CodeNotFound, srerrors.CodeMissingKey:
		return 2
	default:
		return 1
	}
}
