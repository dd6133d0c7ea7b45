// Package watch reports changes to stlc source files.
//
// A Watcher tracks single files and directory trees with fsnotify and calls
// a handler once a changed file has been quiet for the configured debounce
// interval. The stlc watch command uses it to rebuild a program every time
// it is saved.
package watch
