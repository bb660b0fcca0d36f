package arenabook

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/shivam-909/bumparena/alloc"
	"github.com/shivam-909/bumparena/internal/orderbook"
)

// node is the arena-resident tree node. Children are handles, not pointers,
// because the GC does not scan arena memory.
type node struct {
	order orderbook.Order
	left  alloc.Handle
	right alloc.Handle
}

// arenabook implements orderbook.OrderBook using a BST whose nodes are
// bump-allocated from an alloc.Arena. The book must be the arena's only
// user: every removal releases one allocation, and removing the last order
// bulk-resets the arena.
type arenabook struct {
	arena  *alloc.Arena
	tree   alloc.Handle
	n      int
	padded bool // a pad allocation aligns the nodes of a down arena
}

// New creates an arena-backed order book.
func New(a *alloc.Arena) orderbook.OrderBook {
	return &arenabook{arena: a}
}

// newNode allocates a node for the given Order from the arena.
func (b *arenabook) newNode(o orderbook.Order) (alloc.Handle, error) {
	if b.n == 0 {
		if err := b.align(); err != nil {
			return alloc.Handle{}, errors.Wrapf(err, "insert order %d", o.Id)
		}
	}
	h, err := alloc.NewValue[node](b.arena)
	if err != nil {
		return alloc.Handle{}, errors.Wrapf(err, "insert order %d", o.Id)
	}
	nd, err := alloc.Value[node](b.arena, h)
	if err != nil {
		// Keep the live count matched with the number of nodes.
		b.arena.Release()
		return alloc.Handle{}, errors.Wrapf(err, "insert order %d", o.Id)
	}
	*nd = node{order: o}
	return h, nil
}

// align runs on an empty book. Nodes have a size that is a multiple of
// their alignment, so aligning the first one aligns every later one. A down
// arena whose capacity is not a multiple of the alignment needs a pad
// allocation in front; it is released together with the last node.
func (b *arenabook) align() error {
	if b.padded || b.arena.Direction() != alloc.Down {
		return nil
	}
	size, align := alloc.Sizeof[node](), alloc.Alignof[node]()
	off := b.arena.Capacity() - b.arena.Used() - size
	if off < 0 || off%align == 0 {
		return nil
	}
	if _, err := b.arena.Allocate(1, off%align); err != nil {
		return err
	}
	b.padded = true
	return nil
}

func (b *arenabook) unpad() {
	if b.padded {
		b.padded = false
		b.arena.Release()
	}
}

// at resolves a handle to its node.
func (b *arenabook) at(h alloc.Handle) *node {
	nd, err := alloc.Value[node](b.arena, h)
	if err != nil {
		// Handles stored in the tree are live by construction.
		panic(fmt.Sprintf("arenabook: corrupt link: %v", err))
	}
	return nd
}

// Insert adds a new order into the BST keyed by Order.Id.
// Duplicates (same ID) go to the right.
func (b *arenabook) Insert(o orderbook.Order) error {
	nh, err := b.newNode(o)
	if err != nil {
		return err
	}
	b.n++

	if b.tree.IsZero() {
		b.tree = nh
		return nil
	}

	curr := b.at(b.tree)
	for {
		if o.Id < curr.order.Id {
			if curr.left.IsZero() {
				curr.left = nh
				return nil
			}
			curr = b.at(curr.left)
		} else {
			if curr.right.IsZero() {
				curr.right = nh
				return nil
			}
			curr = b.at(curr.right)
		}
	}
}

// Remove locates a node by its Order.Id and unlinks it from the BST.
// If a node to remove has two children, we use the in-order successor
// (the leftmost node in its right subtree).
func (b *arenabook) Remove(id int) error {
	parent, h, isLeft := b.findNodeById(id)
	if h.IsZero() {
		return orderbook.ErrOrderNotFound
	}
	nd := b.at(h)

	var replacement alloc.Handle

	switch {
	// Case 1: node has only a right subtree (or none)
	case nd.left.IsZero():
		replacement = nd.right

	// Case 2: node has only a left subtree
	case nd.right.IsZero():
		replacement = nd.left

	// Case 3: node has both subtrees => splice in the successor
	default:
		succParent, succ := b.findSuccessor(nd.right)
		sn := b.at(succ)

		// If the successor is deeper than nd.right, detach it from its
		// parent's left and hand it nd's right subtree.
		if !succParent.IsZero() {
			b.at(succParent).left = sn.right
			sn.right = nd.right
		}

		sn.left = nd.left
		replacement = succ
	}

	if parent.IsZero() {
		b.tree = replacement
	} else if isLeft {
		b.at(parent).left = replacement
	} else {
		b.at(parent).right = replacement
	}

	// The node's bytes stay consumed until the book is empty.
	b.n--
	b.arena.Release()
	if b.n == 0 {
		b.unpad()
	}
	return nil
}

func (b *arenabook) Len() int {
	return b.n
}

// findNodeById walks the BST to find the node whose Order.Id == id.
// Returns (parent, node, isLeftChild); zero handles stand for "none".
func (b *arenabook) findNodeById(id int) (alloc.Handle, alloc.Handle, bool) {
	var (
		parent  alloc.Handle
		current = b.tree
		isLeft  bool
	)

	for !current.IsZero() {
		nd := b.at(current)
		if id == nd.order.Id {
			return parent, current, isLeft
		}
		parent = current
		if id < nd.order.Id {
			current = nd.left
			isLeft = true
		} else {
			current = nd.right
			isLeft = false
		}
	}
	return alloc.Handle{}, alloc.Handle{}, false
}

// findSuccessor returns (parent, successor) for the leftmost node in root.
// parent is zero when root itself is the successor.
func (b *arenabook) findSuccessor(root alloc.Handle) (alloc.Handle, alloc.Handle) {
	var (
		parent alloc.Handle
		curr   = root
	)
	for {
		left := b.at(curr).left
		if left.IsZero() {
			return parent, curr
		}
		parent = curr
		curr = left
	}
}

// Orders returns the book's orders in id order.
func (b *arenabook) Orders() []orderbook.Order {
	orders := make([]orderbook.Order, 0, b.n)

	var collect func(h alloc.Handle)
	collect = func(h alloc.Handle) {
		if h.IsZero() {
			return
		}
		nd := b.at(h)
		collect(nd.left)
		orders = append(orders, nd.order)
		collect(nd.right)
	}
	collect(b.tree)
	return orders
}

// String renders the book grouped by side, best prices first.
func (b *arenabook) String() string {
	var buyOrders, sellOrders []orderbook.Order
	for _, o := range b.Orders() {
		if o.Side == orderbook.OrderSideBuy {
			buyOrders = append(buyOrders, o)
		} else {
			sellOrders = append(sellOrders, o)
		}
	}

	var sb strings.Builder
	sb.WriteString("Order Book\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")

	sb.WriteString("Sells:\n")
	for i := len(sellOrders) - 1; i >= 0; i-- {
		o := sellOrders[i]
		fmt.Fprintf(&sb, "Price: %d, Quantity: %d, ID: %d\n", o.Price, o.Qty, o.Id)
	}

	sb.WriteString(strings.Repeat("-", 40) + "\n")

	sb.WriteString("Buys:\n")
	for i := len(buyOrders) - 1; i >= 0; i-- {
		o := buyOrders[i]
		fmt.Fprintf(&sb, "Price: %d, Quantity: %d, ID: %d\n", o.Price, o.Qty, o.Id)
	}
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	return sb.String()
}
