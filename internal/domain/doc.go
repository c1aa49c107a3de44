// Package domain defines the core business entities and errors of the exam
// practice platform: tests and their content, in-progress attempts, graded
// results, vocabulary words and learning progress, and users.
//
// Entities here are plain values with validation helpers. They carry no
// knowledge of persistence or transport.
package domain
