package huffman

import "container/heap"

// noChild marks a missing child handle.
const noChild = -1

// Node is one entry of a Tree arena. Leaves carry a symbol and have no
// children; internal nodes carry the summed frequency of both children.
type Node struct {
	Symbol rune
	Freq   int
	Left   int
	Right  int
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == noChild && n.Right == noChild
}

// Tree is a Huffman tree stored as an arena of nodes addressed by index.
// It is immutable once BuildTree returns.
type Tree struct {
	nodes []Node
	root  int
}

// Root returns the handle of the root node.
func (t *Tree) Root() int { return t.root }

// Node returns the node for handle h.
func (t *Tree) Node(h int) Node { return t.nodes[h] }

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// queueItem orders arena handles by frequency, then by the sequence number
// assigned when the node entered the queue.
type queueItem struct {
	handle int
	freq   int
	seq    int
}

type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *nodeQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// BuildTree builds a Huffman tree from freqs. It returns nil when freqs is
// empty and a single-leaf tree when there is one distinct symbol.
//
// Ties are broken by insertion order: leaves enter the queue in ascending
// symbol order and each merged node gets the next sequence number, so equal
// input always yields the same tree. The first node popped becomes the left
// child.
func BuildTree(freqs Frequencies) *Tree {
	if len(freqs) == 0 {
		return nil
	}

	symbols := freqs.Symbols()
	t := &Tree{nodes: make([]Node, 0, 2*len(symbols)-1)}
	q := make(nodeQueue, 0, len(symbols))
	seq := 0

	for _, r := range symbols {
		h := len(t.nodes)
		t.nodes = append(t.nodes, Node{Symbol: r, Freq: freqs[r], Left: noChild, Right: noChild})
		q = append(q, queueItem{handle: h, freq: freqs[r], seq: seq})
		seq++
	}
	heap.Init(&q)

	for q.Len() > 1 {
		a := heap.Pop(&q).(queueItem)
		b := heap.Pop(&q).(queueItem)

		h := len(t.nodes)
		t.nodes = append(t.nodes, Node{Freq: a.freq + b.freq, Left: a.handle, Right: b.handle})
		heap.Push(&q, queueItem{handle: h, freq: a.freq + b.freq, seq: seq})
		seq++
	}

	t.root = q[0].handle
	return t
}
