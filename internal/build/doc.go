// Package build runs the site generation pipeline.
//
// A Generator owns one source tree and one output directory. Run executes a
// fixed sequence of stages, each timed, logged and recorded, and aborts on
// the first failure:
//
//	prepare_output → load_posts → render_posts → render_home → write_feeds → verify_links
//
// Every post page is written before the home page and the feeds, and any
// failure leaves no guarantee about the output directory other than that
// the build reports an error.
package build
