package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 represents a 4D homogeneous vector
type Vec4 struct {
	X, Y, Z, W float64
}

/**
 * @brief a 4x4 homogeneous matrix stored row-major. Points are column
 * vectors, so a transform is applied as M·p and composed right to left.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float64
}

/**
 * @brief A plane in normal form: every point r on it satisfies
 * Normal·r = D.
 */
type Plane struct {
	/** @brief The plane normal, not necessarily of unit length. */
	Normal Vec3
	/** @brief The signed offset Normal·p for any point p on the plane. */
	D float64
}

/**
 * @brief Represents the transform of an object in the world, composed as
 * translation·rotation·scale. The rotation is kept as Euler angles and is
 * applied X first, then Y, then Z. NOTE: The properties of this should not
 * be edited directly, but done via the functions in transform.go to ensure
 * proper matrix generation.
 */
type Transform struct {
	/** @brief The position in the world. */
	Position Vec3
	/** @brief The Euler rotation in radians. */
	Rotation Vec3
	/** @brief The scale in the world. */
	Scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local Mat4
}
