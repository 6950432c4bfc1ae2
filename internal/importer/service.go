package importer

import (
	"fmt"
	"io"

	"github.com/hannahwr/nestcare/internal/importer/ledgercsv"
)

type Service struct {
	ledgerParser Parser
}

func NewService() *Service {
	return &Service{
		ledgerParser: ledgercsv.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]Record, error) {
	var parser Parser

	switch format {
	case FormatLedger:
		parser = s.ledgerParser
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}

	return parser.Parse(r)
}
