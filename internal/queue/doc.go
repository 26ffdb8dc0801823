// Package queue writes batches onto Redis lists.
//
// A push is a single LPUSH carrying the whole batch. The batch is sent in
// reverse so that, once pushed, the head of the list reads in the batch's
// original order. Consumers pop from the tail (BRPOP), so successive
// batches come out in the order they were pushed.
package queue
