package response

import (
	"gin-booking-engine/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

var errNilView = errs.New("response mapping: nil view")

// copyFrom fills dst from a read-model view field by field.
func copyFrom(dst, src any) error {
	if err := copier.Copy(dst, src); err != nil {
		return errs.Wrap(err, "response mapping failed")
	}
	return nil
}
