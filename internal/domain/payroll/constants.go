package payroll

// Rubric codes. P* are earnings, D* deductions, R* computed aggregates.
const (
	CodeBaseSalary     = "P001"
	CodeGratification  = "P002"
	CodeVacationBonus  = "P025"
	CodeTimeInService  = "P031"
	CodeGrantedFunc    = "P307"
	CodeCourseAddition = "P316"
	CodeTitleAddition  = "P317"
	CodeProductivity   = "P331"

	CodeAssociationDue = "D019"
	CodePension        = "D026"
	CodeIncomeTax      = "D031"
	CodeDentalPlan     = "D042"
	CodeVacationTax    = "D055"
	CodeHealthCoPay    = "D070"
	CodeUnionFlat      = "D303"
	CodeUnionAuditors  = "D351"

	CodeIncomeTaxBase   = "R101"
	CodePensionBase     = "R102"
	CodeGross           = "R103"
	CodeTotalDeductions = "R104"
	CodeNet             = "R105"
)

// CanonicalOrder is the display order of rubric codes on the payslip.
var CanonicalOrder = []string{
	CodeBaseSalary, CodeGratification, CodeGrantedFunc, CodeTimeInService,
	CodeVacationBonus, CodeCourseAddition, CodeTitleAddition, CodeProductivity,
	CodePension, CodeAssociationDue, CodeIncomeTax, CodeDentalPlan,
	CodeVacationTax, CodeHealthCoPay, CodeUnionFlat, CodeUnionAuditors,
	CodeIncomeTaxBase, CodePensionBase, CodeGross, CodeTotalDeductions, CodeNet,
}

const (
	RoleSeniorAssessor = "Assessor_Tecnico_de_Controle_Externo_Auditor_de_Controle_Externo"
	RoleAuxAnalyst     = "Analista_Auxiliar_de_Controle_Externo"

	// Reference cell of the salary table that prices a granted function.
	GrantedFuncRefRole  = RoleSeniorAssessor
	GrantedFuncRefClass = "A"
	GrantedFuncRefStep  = "1"
)

// RoleDisplayNames maps salary-table role ids to the names shown in the form.
var RoleDisplayNames = map[string]string{
	RoleSeniorAssessor: "Assessor Técnico de Controle Externo / Auditor de Controle Externo",
	RoleAuxAnalyst:     "Analista Auxiliar de Controle Externo",
	"Auxiliar_Tecnico_de_Controle_Externo_Administrativo_Informatica": "Auxiliar Técnico de Controle Externo - Administrativo / Informática",
	"Motorista": "Motorista",
	"Agente_Auxiliar_de_Servicos_Administrativos": "Agente Auxiliar de Serviços Administrativos",
	"Agente_Auxiliar_de_Servicos_Gerais":          "Agente Auxiliar de Serviços Gerais",
	"Agente_de_Vigilancia_e_Zeladoria":            "Agente de Vigilância e Zeladoria",
}

var gratificationRoles = map[string]bool{
	RoleSeniorAssessor: true,
	RoleAuxAnalyst:     true,
}

const (
	TimeInServiceCap       = 0.60
	ProductivityMaxPercent = 100.0

	CourseRate        = 0.10
	GratificationRate = 0.80
	PensionRate       = 0.14
	HealthCoPayRate   = 0.045
	UnionAuditorsRate = 0.008

	ManagerFuncRate     = 0.90
	CoordinatorFuncRate = 1.00

	DefaultProductivityBaseRate = 0.90

	UnionFlatFee       = 40.00
	AssociationDueFee  = 77.13
	DentalPlanFee      = 33.06
	VacationBonusRatio = 3.0
)

type TitleTier string

const (
	TitleNone           TitleTier = "nenhum"
	TitleSpecialization TitleTier = "especializacao"
	TitleMaster         TitleTier = "mestrado"
	TitleDoctorate      TitleTier = "doutorado"
)

var titleRates = map[TitleTier]float64{
	TitleNone:           0,
	TitleSpecialization: 0.15,
	TitleMaster:         0.25,
	TitleDoctorate:      0.35,
}

type FunctionTier string

const (
	FunctionNone        FunctionTier = "nenhuma"
	FunctionManager     FunctionTier = "gerente"
	FunctionCoordinator FunctionTier = "coordenador"
)

type UnionType string

const (
	UnionSindicontas UnionType = "SINDICONTAS-PA"
	UnionAudTCE      UnionType = "AUD-TCE/PA"
)

// KnownUnionTypes lists the contribution types offered by the selection dialog.
var KnownUnionTypes = []UnionType{UnionSindicontas, UnionAudTCE}
