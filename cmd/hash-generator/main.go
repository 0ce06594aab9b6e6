// Command hash-generator prints bcrypt hashes for seeding users directly in
// the database.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/stash-api/internal/service/auth"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := newCLI(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "hash-generator",
		Usage:     "print bcrypt hashes of the given passwords",
		ArgsUsage: "PASSWORD...",
		Writer:    out,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "cost",
				Usage: "bcrypt cost factor",
				Value: bcrypt.DefaultCost,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errors.New("at least one password is required")
			}
			hasher := auth.NewBcryptVerifier(c.Int("cost"))
			for _, password := range c.Args().Slice() {
				hash, err := hasher.Hash(password)
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, hash)
			}
			return nil
		},
	}
}
