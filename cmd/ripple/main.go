package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/ripplekit/ripple/persist"
)

const fileKey = "file"

func main() {
	cmd := &cli.Command{
		Name:  "ripple",
		Usage: "Inspect ripple persistence files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     fileKey,
				Usage:    "Path to the bolt persistence file",
				Required: true,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "keys",
				Usage:  "List every persisted key",
				Action: listKeys,
			},
			{
				Name:      "get",
				Usage:     "Print the raw payload stored under a key",
				ArgsUsage: "<key>",
				Action:    getKey,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func listKeys(ctx context.Context, cmd *cli.Command) error {
	adapter, err := persist.OpenBolt(cmd.String(fileKey))
	if err != nil {
		return err
	}
	defer adapter.Close()

	keys, err := adapter.Keys()
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"key", "bytes"})
	for _, key := range keys {
		data, ok, err := adapter.Load(key)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		tbl.Append([]string{key, fmt.Sprintf("%d", len(data))})
	}
	tbl.Render()
	return nil
}

func getKey(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Args().First()
	if key == "" {
		return fmt.Errorf("usage: ripple --file <path> get <key>")
	}
	adapter, err := persist.OpenBolt(cmd.String(fileKey))
	if err != nil {
		return err
	}
	defer adapter.Close()

	data, ok, err := adapter.Load(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no value stored under %q", key)
	}
	fmt.Println(data)
	return nil
}
