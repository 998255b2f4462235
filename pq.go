package search

import "container/heap"

// frontierItem is one pending state. Cost is the accumulated path cost at push
// time, Priority the key a priority frontier orders by.
type frontierItem[S comparable] struct {
	State    S
	Cost     float64
	Priority float64
	Sequence int
}

// frontier holds discovered-but-unexpanded states under one removal discipline.
type frontier[S comparable] interface {
	Len() int
	push(item frontierItem[S])
	pop() frontierItem[S]
	states() []S
}

func newFrontier[S comparable](strategy Strategy) frontier[S] {
	switch strategy {
	case BreadthFirstStrategy:
		return &fifoQueue[S]{}
	case BestFirstStrategy:
		queue := make(priorityQueue[S], 0)
		heap.Init(&queue)
		return &queue
	default:
		return &lifoStack[S]{}
	}
}

type fifoQueue[S comparable] struct {
	items []frontierItem[S]
	head  int
}

func (queue *fifoQueue[S]) Len() int { return len(queue.items) - queue.head }

func (queue *fifoQueue[S]) push(item frontierItem[S]) { queue.items = append(queue.items, item) }

func (queue *fifoQueue[S]) pop() frontierItem[S] {
	item := queue.items[queue.head]
	queue.items[queue.head] = frontierItem[S]{}
	queue.head++
	// reclaim the consumed prefix once it dominates the backing array
	if queue.head >= 1024 && queue.head*2 >= len(queue.items) {
		queue.items = append([]frontierItem[S](nil), queue.items[queue.head:]...)
		queue.head = 0
	}
	return item
}

func (queue *fifoQueue[S]) states() []S {
	out := make([]S, 0, queue.Len())
	for _, item := range queue.items[queue.head:] {
		out = append(out, item.State)
	}
	return out
}

type lifoStack[S comparable] []frontierItem[S]

func (stack *lifoStack[S]) Len() int { return len(*stack) }

func (stack *lifoStack[S]) push(item frontierItem[S]) { *stack = append(*stack, item) }

func (stack *lifoStack[S]) pop() frontierItem[S] {
	old := *stack
	n := len(old)
	item := old[n-1]
	old[n-1] = frontierItem[S]{}
	*stack = old[:n-1]
	return item
}

func (stack *lifoStack[S]) states() []S {
	out := make([]S, 0, len(*stack))
	for i := len(*stack) - 1; i >= 0; i-- {
		out = append(out, (*stack)[i].State)
	}
	return out
}

// priorityQueue orders by Priority, then by insertion Sequence so equal keys
// come out first-in-first-out.
type priorityQueue[S comparable] []frontierItem[S]

func (queue priorityQueue[S]) Len() int { return len(queue) }
func (queue priorityQueue[S]) Less(i, j int) bool {
	if queue[i].Priority != queue[j].Priority {
		return queue[i].Priority < queue[j].Priority
	}
	return queue[i].Sequence < queue[j].Sequence
}
func (queue priorityQueue[S]) Swap(i, j int) { queue[i], queue[j] = queue[j], queue[i] }

func (queue *priorityQueue[S]) Push(x any) {
	*queue = append(*queue, x.(frontierItem[S]))
}

func (queue *priorityQueue[S]) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	item := oldQueue[n-1]
	oldQueue[n-1] = frontierItem[S]{}
	*queue = oldQueue[:n-1]
	return item
}

func (queue *priorityQueue[S]) push(item frontierItem[S]) { heap.Push(queue, item) }

func (queue *priorityQueue[S]) pop() frontierItem[S] { return heap.Pop(queue).(frontierItem[S]) }

func (queue *priorityQueue[S]) states() []S {
	ordered := make(priorityQueue[S], len(*queue))
	copy(ordered, *queue)
	out := make([]S, 0, len(ordered))
	for ordered.Len() > 0 {
		out = append(out, heap.Pop(&ordered).(frontierItem[S]).State)
	}
	return out
}
