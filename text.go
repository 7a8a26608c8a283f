package main

var (
	Headline = `Hi, I'm Zach.`

	AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
	different language, experimenting with tools, or solving tricky problems.
	The line typing itself above is driven by the Go server this page is served from, and streamed to your browser as it changes.`
)
