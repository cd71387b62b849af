// Package writer serializes a resolved assembler state into the three
// base-4 encoded output files: object, entry, and external-use.
package writer

import (
	"fmt"
	"io"

	"github.com/JosefShenhav/wordasm/internal/assemble"
	"github.com/JosefShenhav/wordasm/internal/isa"
)

// WriteObject writes the header line plus one line per code word (in IC
// order) and per data word (in shifted DC order).
func WriteObject(w io.Writer, s *assemble.State) error {
	icCount := s.ICFinal() - 100
	dcCount := len(s.Data.All())
	if _, err := fmt.Fprintf(w, "\t%s %s\n", isa.DecimalToBase4(icCount), isa.DecimalToBase4(dcCount)); err != nil {
		return err
	}
	for _, cw := range s.Code.All() {
		word, err := isa.BinaryToBase4(cw.Payload.Bits())
		if err != nil {
			return fmt.Errorf("code word at %d: %w", cw.Address, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", isa.DecimalToBase4(cw.Address), word); err != nil {
			return err
		}
	}
	for _, dw := range s.Data.All() {
		word, err := isa.BinaryToBase4(dw.Bits)
		if err != nil {
			return fmt.Errorf("data word at %d: %w", dw.Address, err)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", isa.DecimalToBase4(dw.Address), word); err != nil {
			return err
		}
	}
	return nil
}

// WriteEntries writes one line per entry record. Callers should skip
// calling this (and omit the .ent file) when there are no entries.
func WriteEntries(w io.Writer, s *assemble.State) error {
	for _, e := range s.Entries.All() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", e.Name, isa.DecimalToBase4(e.Address)); err != nil {
			return err
		}
	}
	return nil
}

// WriteExternals writes one line per external-use record. Callers should
// skip calling this (and omit the .ext file) when there are no uses.
func WriteExternals(w io.Writer, s *assemble.State) error {
	for _, u := range s.Externals.All() {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", u.Name, isa.DecimalToBase4(u.Address)); err != nil {
			return err
		}
	}
	return nil
}
