// Package types defines the task record, the category enumeration, the
// storage and task store interfaces, and the standard errors shared by every
// tasklist package.
package types
