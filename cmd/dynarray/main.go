package main

import (
	"context"
	"os"

	"go.llib.dev/dynarray/internal/demo"
	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logging"
)

func main() {
	cli.Main(context.Background(), demo.Command{
		Logger: &logging.Logger{Out: os.Stderr},
	})
}
