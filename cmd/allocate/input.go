package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"gopkg.in/yaml.v3"
)

// stdinPath selects standard input as the order document.
const stdinPath = "-"

var errEmptyDocument = errors.New("order document is empty")

type ioConfig struct {
	stdin  io.Reader
	stdout io.Writer
}

// InputConfig selects the order document.
type InputConfig struct {
	File     string `long:"file" short:"f" required:"true" description:"Order document (YAML or JSON); - reads stdin"`
	MaxItems int    `long:"max-items" default:"0" description:"Maximum distinct items per order or inventory; 0 disables"`
	MaxWH    int    `long:"max-warehouses" default:"0" description:"Maximum warehouses per request; 0 disables"`
}

func (cfg InputConfig) limits() dto.Limits {
	return dto.Limits{MaxWarehouses: cfg.MaxWH, MaxItems: cfg.MaxItems}
}

// load reads, decodes and validates the order document. Every failure is an invalid input.
func (cfg InputConfig) load(stdin io.Reader) (*dto.AllocateRequest, error) {
	var data []byte
	var err error
	if cfg.File == stdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(cfg.File)
	}
	if err != nil {
		return nil, invalidInput(fmt.Errorf("read order document: %w", err))
	}

	req, err := decodeRequest(data)
	if err != nil {
		return nil, invalidInput(err)
	}
	if err := req.Validate(cfg.limits()); err != nil {
		return nil, invalidInput(err)
	}
	return req, nil
}

// decodeRequest decodes a YAML document; JSON is accepted as YAML. Unknown fields and
// non-integer quantities are rejected.
func decodeRequest(data []byte) (*dto.AllocateRequest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var req dto.AllocateRequest
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyDocument
		}
		return nil, fmt.Errorf("decode order document: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode order document: %w", err)
	}
	if err := dto.CheckYAMLQuantities(&doc); err != nil {
		return nil, err
	}
	return &req, nil
}
