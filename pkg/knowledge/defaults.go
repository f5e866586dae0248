package knowledge

// Defaults returns a base preloaded with examples for the opaque math
// and standard-library types a Bevy-flavored reflection endpoint
// exposes. These types register as plain values (their internals are
// not reflected), so without curated entries they would surface as not
// mutable despite accepting whole-value writes.
func Defaults() *Base {
	b := New()

	// glam math types serialize as flat component arrays.
	b.Set(Exact("glam::Vec2"), []any{0.0, 0.0})
	b.Set(Exact("glam::Vec3"), []any{0.0, 0.0, 0.0})
	b.Set(Exact("glam::Vec3A"), []any{0.0, 0.0, 0.0})
	b.Set(Exact("glam::Vec4"), []any{0.0, 0.0, 0.0, 0.0})
	b.Set(Exact("glam::IVec2"), []any{0, 0})
	b.Set(Exact("glam::IVec3"), []any{0, 0, 0})
	b.Set(Exact("glam::UVec2"), []any{0, 0})
	b.Set(Exact("glam::UVec3"), []any{0, 0, 0})
	b.Set(Exact("glam::Quat"), []any{0.0, 0.0, 0.0, 1.0})
	b.Set(Exact("glam::Mat3"), []any{
		1.0, 0.0, 0.0,
		0.0, 1.0, 0.0,
		0.0, 0.0, 1.0,
	})
	b.Set(Exact("glam::Mat4"), []any{
		1.0, 0.0, 0.0, 0.0,
		0.0, 1.0, 0.0, 0.0,
		0.0, 0.0, 1.0, 0.0,
		0.0, 0.0, 0.0, 1.0,
	})

	// Standard-library opaques.
	b.Set(Exact("core::time::Duration"), map[string]any{"secs": 1, "nanos": 0})
	b.Set(Exact("std::path::PathBuf"), "assets/example.png")
	b.Set(Exact("uuid::Uuid"), "00000000-0000-0000-0000-000000000000")

	return b
}
