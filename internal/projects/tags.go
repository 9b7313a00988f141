package projects

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"treedash/internal/models"
)

const (
	DefaultTagIcon = "fa-tree"

	// maxUnwrap bounds how many string-encoding layers legacy rows may carry.
	maxUnwrap = 2
)

var (
	ErrTagsTooDeep   = errors.New("tags nested deeper than the legacy repair allows")
	ErrTagsMalformed = errors.New("tags are not a JSON array")
)

// Repair describes what RepairTags had to do to a stored value.
type Repair struct {
	Unwrapped int `json:"unwrapped"`
	Dropped   int `json:"dropped"`
}

func (r Repair) Changed() bool {
	return r.Unwrapped > 0 || r.Dropped > 0
}

// RepairTags decodes a project's tags value, undoing the double and triple
// string-encoding legacy rows were written with. Entries that cannot be
// read are dropped and counted; nesting past the bound is an error.
func RepairTags(raw json.RawMessage) ([]models.Tag, Repair, error) {
	var rep Repair

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.Tag{}, rep, nil
	}

	var entries []json.RawMessage
	for {
		if err := json.Unmarshal(raw, &entries); err == nil {
			break
		}

		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, rep, ErrTagsMalformed
		}
		if rep.Unwrapped == maxUnwrap {
			return nil, rep, ErrTagsTooDeep
		}
		rep.Unwrapped++

		raw = bytes.TrimSpace([]byte(s))
		if len(raw) == 0 {
			return []models.Tag{}, rep, nil
		}
	}

	tags, err := walkTags(entries, true, &rep)
	if err != nil {
		return nil, rep, err
	}
	return tags, rep, nil
}

func walkTags(entries []json.RawMessage, allowNested bool, rep *Repair) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(entries))

	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			s = strings.TrimSpace(s)
			switch {
			case s == "":
				rep.Dropped++
			case strings.HasPrefix(s, "["):
				nested, ok, err := unwrapLabel(s, allowNested, rep)
				if err != nil {
					return nil, err
				}
				if ok {
					tags = append(tags, nested...)
				} else {
					tags = append(tags, models.Tag{Icon: DefaultTagIcon, Label: s})
				}
			default:
				tags = append(tags, models.Tag{Icon: DefaultTagIcon, Label: s})
			}
			continue
		}

		var tag models.Tag
		if err := json.Unmarshal(entry, &tag); err != nil {
			rep.Dropped++
			continue
		}

		label := strings.TrimSpace(tag.Label)
		if label == "" {
			rep.Dropped++
			continue
		}
		if strings.HasPrefix(label, "[") {
			nested, ok, err := unwrapLabel(label, allowNested, rep)
			if err != nil {
				return nil, err
			}
			if ok {
				tags = append(tags, nested...)
				continue
			}
		}

		if tag.Icon == "" {
			tag.Icon = DefaultTagIcon
		}
		tag.Label = label
		tags = append(tags, tag)
	}

	return tags, nil
}

// unwrapLabel reads a label that is itself an encoded tag array. Only one
// such level is repaired. ok is false when the label is not an array at all,
// such as "[New] Storm cleanup", and is then a plain label.
func unwrapLabel(label string, allowNested bool, rep *Repair) ([]models.Tag, bool, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(label), &entries); err != nil {
		return nil, false, nil
	}
	if !allowNested {
		return nil, false, ErrTagsTooDeep
	}
	rep.Unwrapped++

	tags, err := walkTags(entries, false, rep)
	return tags, true, err
}

// EncodeTags is the only write path for tags: a plain JSON array, never a
// string holding one.
func EncodeTags(tags []models.Tag) json.RawMessage {
	if tags == nil {
		tags = []models.Tag{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return json.RawMessage("[]")
	}
	return b
}
