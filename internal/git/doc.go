// Package git reads the repository that holds the site to derive page edit
// links. It only inspects local repository metadata; nothing is fetched.
package git
