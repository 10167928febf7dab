package main

import (
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigateway"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type PickleGoStackProps struct {
	awscdk.StackProps
	// PostgresDSN is passed to the function; without it the API runs on the in-memory store.
	PostgresDSN string
	LogLevel    string
}

func NewPickleGoStack(scope constructs.Construct, id string, props *PickleGoStackProps) awscdk.Stack {
	var stackProps awscdk.StackProps
	if props != nil {
		stackProps = props.StackProps
	}
	stack := awscdk.NewStack(scope, &id, &stackProps)

	env := map[string]*string{
		"APP":                     jsii.String("prod"),
		"SIMULATED_LATENCY":       jsii.String("0s"),
		"POSTGRES_MIGRATIONS_DIR": jsii.String("migrations/postgres"),
	}
	if props != nil && props.PostgresDSN != "" {
		env["POSTGRES_DSN"] = jsii.String(props.PostgresDSN)
	}
	if props != nil && props.LogLevel != "" {
		env["LOG_LEVEL"] = jsii.String(props.LogLevel)
	}

	lambdaFn := awslambda.NewFunction(stack, jsii.String("PickleGoApi"), &awslambda.FunctionProps{
		Runtime:     awslambda.Runtime_PROVIDED_AL2023(),
		Handler:     jsii.String("bootstrap"),
		Code:        awslambda.Code_FromAsset(jsii.String("../"), nil),
		MemorySize:  jsii.Number(256),
		Timeout:     awscdk.Duration_Seconds(jsii.Number(15)),
		Environment: &env,
	})

	api := awsapigateway.NewLambdaRestApi(stack, jsii.String("PickleGoApiGateway"), &awsapigateway.LambdaRestApiProps{
		Handler: lambdaFn,
	})

	awscdk.NewCfnOutput(stack, jsii.String("ApiUrl"), &awscdk.CfnOutputProps{Value: api.Url()})

	return stack
}

func main() {
	app := awscdk.NewApp(nil)
	NewPickleGoStack(app, "PickleGoStack", &PickleGoStackProps{
		PostgresDSN: os.Getenv("POSTGRES_DSN"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	})
	app.Synth(nil)
}
