package jsonpath

import "strconv"

// Function names a builtin filter function.
type Function int

const (
	FuncLength Function = iota + 1
	FuncCount
	FuncMatch
	FuncSearch
	FuncValue
)

// ArgType is the declared type of a function parameter or result.
type ArgType int

const (
	ValueType ArgType = iota
	LogicalType
	NodesType
)

func (t ArgType) String() string {
	switch t {
	case ValueType:
		return "ValueType"
	case LogicalType:
		return "LogicalType"
	case NodesType:
		return "NodesType"
	default:
		return "ArgType(" + strconv.Itoa(int(t)) + ")"
	}
}

type functionDef struct {
	name   string
	params []ArgType
	result ArgType
}

var functionDefs = map[Function]functionDef{
	FuncLength: {name: "length", params: []ArgType{ValueType}, result: ValueType},
	FuncCount:  {name: "count", params: []ArgType{NodesType}, result: ValueType},
	FuncMatch:  {name: "match", params: []ArgType{ValueType, ValueType}, result: LogicalType},
	FuncSearch: {name: "search", params: []ArgType{ValueType, ValueType}, result: LogicalType},
	FuncValue:  {name: "value", params: []ArgType{NodesType}, result: ValueType},
}

var functionsByName = func() map[string]Function {
	m := make(map[string]Function, len(functionDefs))
	for f, def := range functionDefs {
		m[def.name] = f
	}
	return m
}()

func lookupFunction(name string) (Function, bool) {
	f, ok := functionsByName[name]
	return f, ok
}

func (f Function) String() string {
	if def, ok := functionDefs[f]; ok {
		return def.name
	}
	return "function(" + strconv.Itoa(int(f)) + ")"
}

// ResultType is the declared result type of f.
func (f Function) ResultType() ArgType {
	return functionDefs[f].result
}

// checkArgs validates args against the declared parameters of f and returns
// them with singular queries reduced where a value is expected.
func checkArgs(f Function, args []FunctionArg, pos int) ([]FunctionArg, error) {
	def := functionDefs[f]
	if len(args) != len(def.params) {
		return nil, syntaxError(pos, "%s() takes %d argument(s), got %d", def.name, len(def.params), len(args))
	}

	checked := make([]FunctionArg, len(args))
	for i, arg := range args {
		param := def.params[i]
		switch a := arg.(type) {
		case Literal:
			if param != ValueType {
				return nil, syntaxError(pos, "%s() argument %d must be of %v, got a literal", def.name, i+1, param)
			}
			checked[i] = a
		case *Query:
			switch param {
			case ValueType:
				sq, ok := a.Singular()
				if !ok {
					return nil, syntaxError(pos, "%s() argument %d must be a singular query", def.name, i+1)
				}
				checked[i] = sq
			default:
				checked[i] = a
			}
		case SingularQuery:
			checked[i] = a
		case FunctionExpr:
			result := a.Func.ResultType()
			ok := result == param || (param == LogicalType && result == NodesType)
			if !ok {
				return nil, syntaxError(pos, "%s() argument %d must be of %v, %s() returns %v", def.name, i+1, param, a.Func, result)
			}
			checked[i] = a
		default:
			return nil, syntaxError(pos, "%s() argument %d is not a valid argument", def.name, i+1)
		}
	}
	return checked, nil
}
