package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

type cmdValidate struct {
	InputConfig
	io ioConfig
}

func (cmd *cmdValidate) Execute([]string) error {
	req, err := cmd.load(cmd.io.stdin)
	if err != nil {
		return err
	}

	log.Debug().Str("file", cmd.File).Int("items", len(req.Order)).Int("warehouses", len(req.Warehouses)).
		Msg("Order document is valid")
	_, err = fmt.Fprintf(cmd.io.stdout, "ok: %d items, %d warehouses\n", len(req.Order), len(req.Warehouses))
	return err
}
