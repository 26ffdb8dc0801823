// Package loader moves the single-column result of a SQL query onto a queue.
//
// A run executes the query once, splits the values into consecutive
// batches and pushes each batch with one bulk operation, reporting progress
// after every push. A push failure stops the run; batches already pushed
// stay on the queue.
package loader
