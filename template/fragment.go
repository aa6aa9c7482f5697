package template

import "strings"

// Fragment is the atomic unit of rendered output: a piece of text with the
// set of labels attached to it. An external styling layer maps labels to
// presentation; the engine never emits color codes itself.
//
// Labels behave as a set: no duplicates, order-insensitive for styling.
// Fragment order within a rendered sequence is significant and preserved.
type Fragment struct {
	Text   string
	Labels []string
}

// Labeled returns a copy of the fragment with the given labels added.
// Labels already present are not duplicated.
func (f Fragment) Labeled(labels ...string) Fragment {
	out := f

	for _, label := range labels {
		if label == "" || out.hasLabel(label) {
			continue
		}

		// Copy-on-write so sibling fragments sharing the slice are unaffected.
		out.Labels = append(out.Labels[:len(out.Labels):len(out.Labels)], label)
	}

	return out
}

func (f Fragment) hasLabel(label string) bool {
	for _, l := range f.Labels {
		if l == label {
			return true
		}
	}

	return false
}

// Text concatenates the plain text of a fragment sequence, discarding
// labels.
func Text(frags []Fragment) string {
	var sb strings.Builder

	for _, f := range frags {
		sb.WriteString(f.Text)
	}

	return sb.String()
}

// isEmpty reports whether a fragment sequence renders no text at all.
// Fragments that carry labels but no text count as empty.
func isEmpty(frags []Fragment) bool {
	for _, f := range frags {
		if f.Text != "" {
			return false
		}
	}

	return true
}

// labelAll applies labels to every fragment in the sequence.
func labelAll(frags []Fragment, labels []string) []Fragment {
	if len(labels) == 0 {
		return frags
	}

	out := make([]Fragment, len(frags))

	for i, f := range frags {
		out[i] = f.Labeled(labels...)
	}

	return out
}
