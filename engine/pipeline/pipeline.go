package pipeline

import (
	"fmt"
	gomath "math"

	"gonum.org/v1/gonum/mat"

	"github.com/Precipitator80/CS4102-Practical-1/engine/algebra"
	"github.com/Precipitator80/CS4102-Practical-1/engine/core"
	"github.com/Precipitator80/CS4102-Practical-1/engine/math"
	"github.com/Precipitator80/CS4102-Practical-1/engine/renderer/components"
)

// Step names, in the order they are produced.
const (
	StepRotation          = "rotation"
	StepModel             = "model"
	StepModelTransform    = "model matches transform"
	StepTransformedPoints = "transformed points"
	StepEdgeX             = "edge v1"
	StepEdgeY             = "edge v2"
	StepEdgeZ             = "edge v3"
	StepDotV1V2           = "v1 . v2"
	StepDotV2V3           = "v2 . v3"
	StepNormal            = "normal"
	StepPlane             = "plane"
	StepCoplanar          = "coplanarity"
	StepCameraRotation    = "camera rotation"
	StepCamera            = "camera"
	StepView              = "view"
	StepViewInverse       = "view inverts camera"
	StepModelView         = "model-view"
	StepModelViewRounded  = "model-view from rounded factors"
	StepModelViewPoints   = "model-view points"
	StepAssociativity     = "associativity"
	StepCentroid          = "centroid"
	StepCentroidMVM       = "model-view centroid"
	StepCentroidDelta     = "centroid difference"
	StepAtOrigin          = "model-view points at origin"
	StepCentroidAtOrigin  = "centroid at origin"
	StepModelViewInverse  = "model-view inverse"
	StepScaler            = "in-place scaler"
	StepScaledPoints      = "scaled points"
	StepScaleDistances    = "scale distances"
	StepCompositionOrder  = "composition order"
)

// Largest element difference allowed between the adjugate and LU inverses.
const inverseTolerance = 1e-6

// Columns of the edges leaving P0 along each local axis of the point table.
const (
	colOrigin = 0
	colX      = 1
	colY      = 3
	colZ      = 4
)

// Pipeline evaluates the fixed composition model → points → view →
// model-view → in-place scale and records every intermediate result.
type Pipeline struct {
	scene    Scene
	symbols  Symbols
	bindings algebra.Bindings
	camera   *components.Camera
	report   *Report

	points      *algebra.Matrix
	rotation    *algebra.Matrix
	model       *algebra.Matrix
	transformed *algebra.Matrix
	camRotation *algebra.Matrix
	view        *algebra.Matrix
	modelView   *algebra.Matrix
	mvmPoints   *algebra.Matrix
	mvmRounded  *mat.Dense
	centroidD   math.Vec3
}

func New(scene Scene, symbols Symbols, runID core.RunID) (*Pipeline, error) {
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	camera := components.NewCamera(scene.Camera.Pitch, scene.Camera.Yaw, scene.Camera.Distance)
	return &Pipeline{
		scene:    scene,
		symbols:  symbols,
		bindings: symbols.ModelBindings(scene.Model).Merge(camera.Bindings(symbols.Camera)),
		camera:   camera,
		report:   &Report{RunID: runID, Precision: scene.Precision},
		points:   algebra.FromDense(scene.Points),
	}, nil
}

// Run evaluates every stage in order. Any failure aborts the run.
func (p *Pipeline) Run() (*Report, error) {
	stages := []struct {
		name string
		fn   func() error
	}{
		{"model", p.modelStage},
		{"points", p.pointsStage},
		{"plane", p.planeStage},
		{"camera", p.cameraStage},
		{"model-view", p.modelViewStage},
		{"centroid", p.centroidStage},
		{"in-place scale", p.scaleStage},
		{"composition order", p.orderStage},
	}
	for _, s := range stages {
		core.LogDebug("run %s: evaluating %s", p.report.RunID.Short(), s.name)
		if err := s.fn(); err != nil {
			core.LogError("run %s: %s failed: %s", p.report.RunID.Short(), s.name, err)
			return nil, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return p.report, nil
}

func (p *Pipeline) precision() int {
	return p.scene.Precision
}

// numeric substitutes the bindings into sym without rounding.
func (p *Pipeline) numeric(sym *algebra.Matrix) (*mat.Dense, error) {
	return sym.Subs(p.bindings).Numeric()
}

func (p *Pipeline) add(step Step) {
	p.report.Steps = append(p.report.Steps, step)
}

// stage evaluates sym and records it. showSymbolic is false for results
// whose symbolic form is too large to read.
func (p *Pipeline) stage(name, label string, sym *algebra.Matrix, showSymbolic bool) (*algebra.Matrix, error) {
	value, err := algebra.Evaluate(sym, p.bindings, p.precision())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	step := Step{Name: name, Label: label, Kind: StepStage, Value: value}
	if showSymbolic {
		step.Symbolic = sym
	}
	p.add(step)
	return value, nil
}

func (p *Pipeline) check(name, label string, value *algebra.Matrix, passed bool, note string) {
	p.add(Step{Name: name, Label: label, Kind: StepCheck, Value: value, Passed: passed, Note: note})
}

func (p *Pipeline) modelStage() error {
	s := p.symbols
	p.rotation = algebra.RotationZYX(s.Rotation[0], s.Rotation[1], s.Rotation[2])
	if _, err := p.stage(StepRotation, `R_{zyx}`, p.rotation, true); err != nil {
		return err
	}

	t := algebra.Translation(s.Translation[0], s.Translation[1], s.Translation[2])
	sc := algebra.Scale(s.Scale[0], s.Scale[1], s.Scale[2])
	p.model = t.Mul(p.rotation.Mul(sc))
	value, err := p.stage(StepModel, `M`, p.model, true)
	if err != nil {
		return err
	}

	exact, err := p.numeric(p.model)
	if err != nil {
		return err
	}
	m, err := math.NewMat4FromDense(exact)
	if err != nil {
		return err
	}
	params := p.scene.Model
	transform := math.TransformCreate()
	transform.SetPosition(params.Translation)
	transform.SetRotation(params.Rotation)
	transform.SetScale(params.Scale)
	local := transform.GetLocal()
	p.check(StepModelTransform, `M = T R S`, value,
		local.Compare(m, math.K_COMPARE_TOLERANCE) && m.IsAffine(),
		"symbolic T·Rz·Ry·Rx·S against the numeric transform")
	return nil
}

func (p *Pipeline) pointsStage() error {
	p.transformed = p.model.Mul(p.points)
	_, err := p.stage(StepTransformedPoints, `M P`, p.transformed, false)
	return err
}

func (p *Pipeline) planeStage() error {
	v1 := algebra.ColumnDiff(p.transformed, colX, colOrigin)
	v2 := algebra.ColumnDiff(p.transformed, colY, colOrigin)
	v3 := algebra.ColumnDiff(p.transformed, colZ, colOrigin)
	for _, e := range []struct {
		name, label string
		v           *algebra.Matrix
	}{
		{StepEdgeX, `v_{1}`, v1},
		{StepEdgeY, `v_{2}`, v2},
		{StepEdgeZ, `v_{3}`, v3},
	} {
		if _, err := p.stage(e.name, e.label, e.v, false); err != nil {
			return err
		}
	}

	for _, d := range []struct {
		name, label string
		a, b        *algebra.Matrix
	}{
		{StepDotV1V2, `v_{1} \cdot v_{2}`, v1, v2},
		{StepDotV2V3, `v_{2} \cdot v_{3}`, v2, v3},
	} {
		dot, err := algebra.EvaluateScalar(d.a.Dot(d.b), p.bindings, p.precision())
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		p.check(d.name, d.label, algebra.ColumnVector(algebra.N(dot)), dot == 0, "edges of the box stay orthogonal")
	}

	normalSym := v1.Cross(v2)
	if _, err := p.stage(StepNormal, `n = v_{1} \times v_{2}`, normalSym, false); err != nil {
		return err
	}
	normalNum, err := p.numeric(normalSym)
	if err != nil {
		return err
	}
	transformed, err := p.numeric(p.transformed)
	if err != nil {
		return err
	}
	origin, err := math.Column(transformed, colOrigin)
	if err != nil {
		return err
	}
	plane := math.NewPlane(math.NewVec3(normalNum.At(0, 0), normalNum.At(1, 0), normalNum.At(2, 0)), origin)
	prec := p.precision()
	n := plane.Normal.Round(prec)
	p.add(Step{
		Name:  StepPlane,
		Label: `n \cdot r = D`,
		Kind:  StepStage,
		Value: algebra.NewMatrix(1, 4, algebra.N(n.X), algebra.N(n.Y), algebra.N(n.Z), algebra.N(math.RoundTo(plane.D, prec))),
		Note:  "[n_x n_y n_z D]",
	})

	ok, residuals, err := plane.Coplanar(transformed, []int{1, 2, 3}, prec)
	if err != nil {
		return err
	}
	p1, err := math.Column(transformed, colX)
	if err != nil {
		return err
	}
	p3, err := math.Column(transformed, colY)
	if err != nil {
		return err
	}
	spanned := math.NewPlaneFromPoints(origin, p1, p3)
	ok = ok && spanned.Normal.Compare(plane.Normal, math.K_COMPARE_TOLERANCE) &&
		math.NearlyEqual(spanned.D, plane.D, math.K_COMPARE_TOLERANCE)
	res := make([]algebra.Expr, len(residuals))
	for i, r := range residuals {
		res[i] = algebra.N(r)
	}
	p.check(StepCoplanar, `n \cdot P_{i} - D`, algebra.NewMatrix(1, len(res), res...), ok,
		"plane through P0 evaluated at P1, P2, P3, normal matching the numeric span of P0, P1, P3")
	return nil
}

func (p *Pipeline) cameraStage() error {
	cs := p.symbols.Camera
	p.camRotation = components.SymbolicRotation(cs)
	if _, err := p.stage(StepCameraRotation, `R_{yxc}`, p.camRotation, true); err != nil {
		return err
	}
	world := components.SymbolicWorld(cs)
	if _, err := p.stage(StepCamera, `M_{camera}`, world, true); err != nil {
		return err
	}

	view, err := world.Inverse()
	if err != nil {
		return err
	}
	p.view = view
	value, err := p.stage(StepView, `M_{view}`, view, false)
	if err != nil {
		return err
	}

	exact, err := p.numeric(view)
	if err != nil {
		return err
	}
	numericView, err := p.camera.GetView()
	if err != nil {
		return err
	}
	eye, err := p.camera.Position()
	if err != nil {
		return err
	}
	p.check(StepViewInverse, `M_{view} = M_{camera}^{-1}`, value,
		math.EqualDense(exact, numericView.ToDense(), math.K_COMPARE_TOLERANCE) &&
			eye.Transform(numericView).Compare(math.NewVec3Zero(), math.K_COMPARE_TOLERANCE),
		"adjugate inverse against the numeric camera inverse, camera position sent to the origin")
	return nil
}

func (p *Pipeline) modelViewStage() error {
	p.modelView = p.view.Mul(p.model)
	value, err := p.stage(StepModelView, `M_{vm} = M_{view} M`, p.modelView, false)
	if err != nil {
		return err
	}

	viewRounded, err := algebra.Evaluate(p.view, p.bindings, p.precision())
	if err != nil {
		return err
	}
	modelRounded, err := algebra.Evaluate(p.model, p.bindings, p.precision())
	if err != nil {
		return err
	}
	drift := viewRounded.Mul(modelRounded).Round(p.precision())
	driftNum, err := drift.Numeric()
	if err != nil {
		return err
	}
	valueNum, err := value.Numeric()
	if err != nil {
		return err
	}
	var diff mat.Dense
	diff.Sub(driftNum, valueNum)
	diff.Apply(func(_, _ int, v float64) float64 { return gomath.Abs(v) }, &diff)
	p.add(Step{
		Name:  StepModelViewRounded,
		Label: `\lfloor M_{view} \rceil \lfloor M \rceil`,
		Kind:  StepStage,
		Value: drift,
		Note:  fmt.Sprintf("largest drift from the rounded product: %.*f", p.precision(), mat.Max(&diff)),
	})

	p.mvmPoints = p.modelView.Mul(p.points)
	rounded, err := p.stage(StepModelViewPoints, `M_{vm} P`, p.mvmPoints, false)
	if err != nil {
		return err
	}
	if p.mvmRounded, err = rounded.Numeric(); err != nil {
		return err
	}

	direct, err := p.numeric(p.mvmPoints)
	if err != nil {
		return err
	}
	viewNum, err := p.numeric(p.view)
	if err != nil {
		return err
	}
	transformed, err := p.numeric(p.transformed)
	if err != nil {
		return err
	}
	var chained mat.Dense
	chained.Mul(viewNum, transformed)
	p.check(StepAssociativity, `(M_{view} M) P = M_{view} (M P)`,
		algebra.FromDense(math.RoundDense(&chained, p.precision())),
		math.EqualDense(direct, &chained, math.K_COMPARE_TOLERANCE),
		"model-view points against the view applied to the transformed points")
	return nil
}

func (p *Pipeline) centroidStage() error {
	prec := p.precision()
	original, err := p.stage(StepCentroid, `\bar{P}`, algebra.Centroid(p.points), false)
	if err != nil {
		return err
	}
	originalNum, err := original.Numeric()
	if err != nil {
		return err
	}

	mvm, err := math.Centroid(p.mvmRounded)
	if err != nil {
		return err
	}
	mvm = mvm.Round(prec)
	p.add(Step{Name: StepCentroidMVM, Label: `\bar{P}_{vm}`, Kind: StepStage, Value: vec3Matrix(mvm)})

	p.centroidD = mvm.Sub(math.NewVec3(originalNum.At(0, 0), originalNum.At(1, 0), originalNum.At(2, 0))).Round(prec)
	p.add(Step{Name: StepCentroidDelta, Label: `\Delta \bar{P}`, Kind: StepStage, Value: vec3Matrix(p.centroidD)})

	exact, err := p.numeric(p.mvmPoints)
	if err != nil {
		return err
	}
	back := algebra.Translation(algebra.N(-p.centroidD.X), algebra.N(-p.centroidD.Y), algebra.N(-p.centroidD.Z))
	undo := p.camRotation.Mul(p.rotation).T()
	atOrigin, err := p.stage(StepAtOrigin, `(R_{yxc} R_{zyx})^{T} T(-\Delta \bar{P}) M_{vm} P`,
		undo.Mul(back.Mul(algebra.FromDense(exact))), false)
	if err != nil {
		return err
	}
	atOriginNum, err := atOrigin.Numeric()
	if err != nil {
		return err
	}
	c, err := math.Centroid(atOriginNum)
	if err != nil {
		return err
	}
	p.add(Step{Name: StepCentroidAtOrigin, Label: `\bar{P}_{0}`, Kind: StepStage, Value: vec3Matrix(c.Round(prec))})
	return nil
}

func (p *Pipeline) scaleStage() error {
	prec := p.precision()
	k := p.scene.ScaleFactors
	mvmNum, err := p.numeric(p.modelView)
	if err != nil {
		return err
	}
	mvm := algebra.FromDense(mvmNum)
	inverse, err := mvm.Inverse()
	if err != nil {
		return fmt.Errorf("model-view: %w", err)
	}
	m4, err := math.NewMat4FromDense(mvmNum)
	if err != nil {
		return err
	}
	luInverse, err := m4.Inverse()
	if err != nil {
		return fmt.Errorf("model-view: %w", err)
	}
	adjInverse, err := inverse.Numeric()
	if err != nil {
		return fmt.Errorf("model-view: %w", err)
	}
	p.check(StepModelViewInverse, `M_{vm}^{-1}`, algebra.FromDense(math.RoundDense(adjInverse, prec)),
		math.EqualDense(adjInverse, luInverse.ToDense(), inverseTolerance),
		"adjugate inverse against the LU inverse")

	scale := algebra.Scale(algebra.N(k.X), algebra.N(k.Y), algebra.N(k.Z))
	scaler := mvm.Mul(scale).Mul(inverse)
	if _, err := p.stage(StepScaler, `M_{vm} S_{k} M_{vm}^{-1}`, scaler, false); err != nil {
		return err
	}

	direct, err := p.numeric(p.mvmPoints)
	if err != nil {
		return err
	}
	scaled := scaler.Mul(algebra.FromDense(direct))
	if _, err := p.stage(StepScaledPoints, `M_{vm} S_{k} M_{vm}^{-1} M_{vm} P`, scaled, false); err != nil {
		return err
	}
	scaledNum, err := scaled.Numeric()
	if err != nil {
		return err
	}

	rows := make([]algebra.Expr, 0, 12)
	passed := true
	for _, e := range []struct {
		col    int
		factor float64
	}{
		{colX, k.X},
		{colY, k.Y},
		{colZ, k.Z},
	} {
		before, err := math.Distance(direct, e.col, colOrigin)
		if err != nil {
			return err
		}
		after, err := math.Distance(scaledNum, e.col, colOrigin)
		if err != nil {
			return err
		}
		ratio := math.RoundTo(after/before, prec)
		if ratio != math.RoundTo(e.factor, prec) {
			passed = false
		}
		rows = append(rows,
			algebra.N(math.RoundTo(before, prec)),
			algebra.N(math.RoundTo(after, prec)),
			algebra.N(ratio),
			algebra.N(e.factor))
	}
	p.check(StepScaleDistances, `\lVert P_{i} - P_{0} \rVert`, algebra.NewMatrix(3, 4, rows...), passed,
		"rows x, y, z edge: [before after ratio expected]")
	return nil
}

func (p *Pipeline) orderStage() error {
	s := p.symbols
	t := algebra.Translation(s.Translation[0], s.Translation[1], s.Translation[2])
	sc := algebra.Scale(s.Scale[0], s.Scale[1], s.Scale[2])
	alternative, err := algebra.Evaluate(p.rotation.Mul(sc.Mul(t)), p.bindings, p.precision())
	if err != nil {
		return err
	}
	canonical, err := algebra.Evaluate(p.model, p.bindings, p.precision())
	if err != nil {
		return err
	}
	p.check(StepCompositionOrder, `R (S T)`, alternative, !alternative.Equal(canonical),
		"R·(S·T) must differ from the canonical T·R·S")
	return nil
}

func vec3Matrix(v math.Vec3) *algebra.Matrix {
	return algebra.ColumnVector(algebra.N(v.X), algebra.N(v.Y), algebra.N(v.Z))
}
