// Package devicewatch listens for udev netlink events so the CLI can block
// until the scanner is attached instead of polling `scanimage -L`.
package devicewatch
