// Package formstate implements the signup form state machine. A Machine holds
// the field values, the touched set, the per-field errors and the phase
// (editing or submitted), and applies change, blur, submit and reset events
// one at a time. Machines are not safe for concurrent use; callers serialise
// events per form instance.
package formstate
