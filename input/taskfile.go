package input

import (
	"crypto/md5"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
)

// _TaskFile stores the plan of a transaction. A worker can load it instead of listing the files again.
type _TaskFile struct {
	Partials []_Partial
	Sig      string
}

// _Partial is a helper with exported attributes for serialization.
type _Partial struct {
	Path  string
	Start int64
	End   int64
}

// SavePlan writes the plan to a task file. An existing file is replaced.
func SavePlan(file string, cfg Config, plan *Plan) error {
	if plan == nil {
		return errors.New("input/SavePlan: plan is nil")
	}

	// create list for serialization
	list := make([]_Partial, 0, plan.TaskCount())
	for _, p := range plan.Partials {
		list = append(list, _Partial{Path: p.Path(), Start: p.Start(), End: p.End()})
	}

	fh, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // override file
	if err != nil {
		return fmt.Errorf("input/SavePlan: %v", err)
	}
	defer fh.Close()

	if err := gob.NewEncoder(fh).Encode(_TaskFile{Partials: list, Sig: planSig(cfg)}); err != nil {
		return fmt.Errorf("input/SavePlan: %v", err)
	}
	return nil
}

// LoadPlan reads a task file. The file must be created with the same path, split flag,
// partition target and non-splittable extensions as cfg.
func LoadPlan(file string, cfg Config) (*Plan, error) {
	fh, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("input/LoadPlan: %w", err)
	}
	defer fh.Close()

	tf := new(_TaskFile)
	if err := gob.NewDecoder(fh).Decode(tf); err != nil {
		return nil, fmt.Errorf("input/LoadPlan: %v", err)
	}

	// check signature
	if tf.Sig != planSig(cfg) {
		return nil, errors.New("input/LoadPlan: wrong task file signature")
	}

	plan := &Plan{}
	for _, v := range tf.Partials {
		p, err := impl.NewPartial(v.Path, v.Start, v.End)
		if err != nil {
			return nil, fmt.Errorf("input/LoadPlan: %v", err)
		}
		plan.Partials = append(plan.Partials, p)
	}
	return plan, nil
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// planSig binds the task file to the config values that change the plan.
func planSig(cfg Config) string {
	h := md5.New()
	h.Write([]byte(cfg.Path))
	h.Write([]byte("|"))
	h.Write([]byte(strconv.FormatBool(cfg.Partition)))
	h.Write([]byte("|"))
	h.Write([]byte(strconv.Itoa(cfg.NumPartitions)))
	h.Write([]byte("|"))
	h.Write([]byte(strings.Join(cfg.NonSplittable, ",")))
	return fmt.Sprintf("%x", h.Sum(nil))
}
