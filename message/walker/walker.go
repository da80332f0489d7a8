// Package walker visits every part of a mail tree in depth first order.
package walker

// Node is a part of a tree. A multipart node has Children, possibly none. A
// single part has none.
type Node[T any] interface {
	IsMultipart() bool
	Children() []T
}

// Parts is a function that can be processed for each part of a mail. The path
// holds the index of each part on the way down from the root and is empty for
// the root itself. The path slice belongs to the walk and must be copied to be
// kept.
type Parts[T Node[T]] func(path []int, part T) error

// Walk performs a depth first search for all the parts of a mail starting
// with the mail itself. It calls the Parts function for each part. If the
// function returns an error, then processing stops immediately and the error
// is returned.
func (w Parts[T]) Walk(root T) error {
	type part struct {
		path []int
		part T
	}

	openStack := make([]part, 0, 10)

	pushStack := func(path []int, p T) {
		children := p.Children()
		for i := len(children) - 1; i >= 0; i-- {
			cp := make([]int, len(path)+1)
			copy(cp, path)
			cp[len(path)] = i
			openStack = append(openStack, part{cp, children[i]})
		}
	}

	popStack := func() part {
		end := len(openStack) - 1
		p := openStack[end]
		openStack = openStack[:end]
		return p
	}

	openStack = append(openStack, part{[]int{}, root})
	for len(openStack) > 0 {
		p := popStack()
		if err := w(p.path, p.part); err != nil {
			return err
		}
		pushStack(p.path, p.part)
	}

	return nil
}

// WalkSingle calls the function for each part that is not multipart, in the
// same order as Walk.
func (w Parts[T]) WalkSingle(root T) error {
	var sw Parts[T] = func(path []int, part T) error {
		if part.IsMultipart() {
			return nil
		}
		return w(path, part)
	}
	return sw.Walk(root)
}

// WalkMultipart calls the function for each multipart part, in the same order
// as Walk.
func (w Parts[T]) WalkMultipart(root T) error {
	var mw Parts[T] = func(path []int, part T) error {
		if !part.IsMultipart() {
			return nil
		}
		return w(path, part)
	}
	return mw.Walk(root)
}
