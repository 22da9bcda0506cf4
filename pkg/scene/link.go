package scene

import (
	"errors"
	"sort"
	"strings"

	errorsmod "cosmossdk.io/errors"
)

// Link is a parsed reference such as "@../Leg/boxROIMiddle.pointsInROI".
type Link struct {
	Path   string // node path, relative unless it starts with '/'
	Object string
	Field  string
}

// IsLink reports whether v is a string link value
func IsLink(v any) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, "@")
}

// ParseLink splits a link into node path, object name and data field.
func ParseLink(s string) (Link, error) {
	if !strings.HasPrefix(s, "@") || len(s) == 1 {
		return Link{}, errorsmod.Wrapf(ErrUnresolvedLink, "%q is not a link", s)
	}
	body := s[1:]

	var l Link
	if i := strings.LastIndex(body, "/"); i >= 0 {
		l.Path, body = body[:i], body[i+1:]
		if l.Path == "" {
			l.Path = "/"
		}
	}
	l.Object, l.Field, _ = strings.Cut(body, ".")
	if l.Object == "" {
		return Link{}, errorsmod.Wrapf(ErrUnresolvedLink, "%q names no object", s)
	}
	return l, nil
}

// String formats the link back to its "@path/object.field" form
func (l Link) String() string {
	var b strings.Builder
	b.WriteString("@")
	if l.Path != "" {
		b.WriteString(l.Path)
		if !strings.HasSuffix(l.Path, "/") {
			b.WriteString("/")
		}
	}
	b.WriteString(l.Object)
	if l.Field != "" {
		b.WriteString(".")
		b.WriteString(l.Field)
	}
	return b.String()
}

// Resolve finds the component a link written in node n points to.
func (n *Node) Resolve(link string) (*Object, string, error) {
	l, err := ParseLink(link)
	if err != nil {
		return nil, "", err
	}
	target := n.Lookup(l.Path)
	if target == nil {
		return nil, "", errorsmod.Wrapf(ErrUnresolvedLink, "%s from %s: no node %q", link, n.Path(), l.Path)
	}
	obj := target.Object(l.Object)
	if obj == nil {
		return nil, "", errorsmod.Wrapf(ErrUnresolvedLink, "%s from %s: no object %q in %s", link, n.Path(), l.Object, target.Path())
	}
	return obj, l.Field, nil
}

// Validate checks every link parameter below root and returns all the
// failures joined together.
func Validate(root *Node) error {
	var errs []error
	_ = Walk(root, func(n *Node) error {
		for _, o := range n.Objects {
			keys := make([]string, 0, len(o.Params))
			for k := range o.Params {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				v := o.Params[k]
				if !IsLink(v) {
					continue
				}
				if _, _, err := n.Resolve(v.(string)); err != nil {
					errs = append(errs, errorsmod.Wrapf(err, "%s.%s", o.Path(), k))
				}
			}
		}
		return nil
	})
	return errors.Join(errs...)
}
