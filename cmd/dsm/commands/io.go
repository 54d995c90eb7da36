package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/dsm/core"
	"github.com/katalvlaran/dsm/matrix"
)

// readMatrix loads the YAML document at path ("-" for stdin).
func readMatrix(cmd *cobra.Command, path string) (*matrix.Matrix, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	var doc matrix.Document
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", matrix.ErrInvalidDocument, err)
	}

	return matrix.Load(core.NewSession(), doc, matrix.WithLogger(logger))
}

// writeMatrix writes m as YAML to out, or to the command output when out
// is empty.
func writeMatrix(cmd *cobra.Command, out string, m *matrix.Matrix) error {
	w := cmd.OutOrStdout()
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m.Document()); err != nil {
		return err
	}

	return enc.Close()
}

// resolveItem finds an item by id or by name, rows first.
func resolveItem(m *matrix.Matrix, ref string) (core.ID, error) {
	if n, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if _, ok := m.Item(core.ID(n)); ok {
			return core.ID(n), nil
		}
	}
	for _, set := range [][]core.Item{m.Rows(), m.Cols()} {
		matrix.SortItems(set)
		for _, it := range set {
			if it.Name == ref {
				return it.ID, nil
			}
		}
	}

	return core.NoID, fmt.Errorf("%w: %q", core.ErrItemNotFound, ref)
}

// itemName returns the name of id, or its number when unknown.
func itemName(m *matrix.Matrix, id core.ID) string {
	if it, ok := m.Item(id); ok {
		return it.Name
	}

	return strconv.FormatInt(int64(id), 10)
}
