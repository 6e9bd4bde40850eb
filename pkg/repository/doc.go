// Package repository hosts the storage backend implementations. The
// conformance tests in this directory run against every backend so the
// memory and Firestore repositories stay behaviorally interchangeable.
package repository
