package providers

import (
	"fmt"
	"venued/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	switch cv.conf.Storage.Backend {
	case structures.StorageBackendFile:
		if cv.conf.Storage.FilePath == "" {
			return fmt.Errorf("invalid config: storage.filePath is required for the file backend")
		}
	case structures.StorageBackendSqlite:
		if cv.conf.Storage.SqlitePath == "" {
			return fmt.Errorf("invalid config: storage.sqlitePath is required for the sqlite backend")
		}
	}

	if p := cv.conf.FakeRequest.Probability; p < 0 || p > 1 {
		return fmt.Errorf("invalid config: fakeRequest.probability must be within [0,1], got %v", p)
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}
