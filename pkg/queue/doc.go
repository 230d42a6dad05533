// Package queue provides the non-blocking queues used to hand events from
// the game loop to the rest of the program.
package queue
