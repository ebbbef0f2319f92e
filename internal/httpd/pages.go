package httpd

import (
	"strconv"
	"strings"
)

// maxChartPoints is the sliding window drawn by the chart pages.
const maxChartPoints = 20

// The page chrome and fragments below are served verbatim; the dashboard,
// config form and chart scripts depend on the /estado, /getconfig, /config
// and /navigate contracts.

const pageHeader = "<!DOCTYPE html><html lang='pt-BR'><head><meta charset='UTF-8'>" +
	"<meta name='viewport' content='width=device-width, initial-scale=1'>" +
	"<title>Web Display</title>" +
	"<link href='https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css' rel='stylesheet'>" +
	"<script src='https://cdn.jsdelivr.net/npm/chart.js'></script>" +
	"<script src='https://cdn.jsdelivr.net/npm/chartjs-plugin-annotation@3.0.1/dist/chartjs-plugin-annotation.min.js'></script>" +
	"<style>" +
	"body { background-color: #f0f2f5; }" +
	".card p { font-size: 2.5rem; font-weight: 300; margin-bottom: 0; }" +
	".card .card-footer { font-size: 0.85rem; color: #6c757d; }" +
	".form-grid-item { display: flex; flex-direction: column; text-align: left; }" +
	"</style>" +
	"<script>" +
	"function checkNavigation(){" +
	"fetch('/navigate').then(r=>r.json()).then(d=>{" +
	"if(d&&d.goto&&window.location.pathname!==d.goto){window.location.href=d.goto;}" +
	"}).catch(e=>{});" +
	"}" +
	"setInterval(checkNavigation,1200);" +
	"</script>" +
	"</head><body class='text-center'>"

const pageNav = "<nav class='navbar navbar-expand-lg navbar-light bg-white shadow-sm mb-4'>" +
	"<div class='container-fluid'>" +
	"<a class='navbar-brand' href='/'>Web Display</a>" +
	"<button class='navbar-toggler' type='button' data-bs-toggle='collapse' data-bs-target='#navbarNav'>" +
	"<span class='navbar-toggler-icon'></span>" +
	"</button>" +
	"<div class='collapse navbar-collapse' id='navbarNav'>" +
	"<ul class='navbar-nav me-auto mb-2 mb-lg-0'>" +
	"<li class='nav-item'><a class='nav-link' href='/'>Início</a></li>" +
	"<li class='nav-item'><a class='nav-link' href='/config'>Configurações</a></li>" +
	"<li class='nav-item'><a class='nav-link' href='/temperatura'>Temperatura</a></li>" +
	"<li class='nav-item'><a class='nav-link' href='/umidade'>Umidade</a></li>" +
	"<li class='nav-item'><a class='nav-link' href='/pressao'>Pressão</a></li>" +
	"<li class='nav-item'><a class='nav-link' href='/altitude'>Altitude</a></li>" +
	"</ul>" +
	"</div>" +
	"</div>" +
	"</nav>"

const pageHome = "<main class='container'>" +
	"<h1>Painel de Controle</h1>" +
	"<div class='row g-4 justify-content-center mt-3' id='cards-container'>" +
	"<div class='col-12 col-md-6 col-lg-3'><div class='card shadow-sm'><div class='card-body'><h2>Temperatura</h2><p><span id='temp_valor'>--</span> °C</p></div></div></div>" +
	"<div class='col-12 col-md-6 col-lg-3'><div class='card shadow-sm'><div class='card-body'><h2>Umidade</h2><p><span id='umidade_valor'>--</span> %</p></div></div></div>" +
	"<div class='col-12 col-md-6 col-lg-3'><div class='card shadow-sm'><div class='card-body'><h2>Pressão</h2><p><span id='pressao_valor'>--</span> kPa</p></div></div></div>" +
	"<div class='col-12 col-md-6 col-lg-3'><div class='card shadow-sm'><div class='card-body'><h2>Altitude</h2><p><span id='alt_valor'>--</span> m</p></div></div></div>" +
	"</div>" +
	"</main>" +
	"<script>" +
	"function atualizarValores(){fetch('/estado').then(r=>r.json()).then(d=>{document.getElementById('temp_valor').innerText=d.temperatura.toFixed(2);document.getElementById('umidade_valor').innerText=d.umidade.toFixed(2);document.getElementById('pressao_valor').innerText=d.pressao.toFixed(3);document.getElementById('alt_valor').innerText=d.altitude.toFixed(2);}).catch(e=>console.error(e));}" +
	"setInterval(atualizarValores,2000);window.onload=atualizarValores;" +
	"</script>"

const pageConfig = "<main class='container d-flex justify-content-center'>" +
	"<div class='card shadow-sm' style='max-width: 800px; flex-grow: 1;'>" +
	"<div class='card-body'>" +
	"<h2 class='card-title'>Limites e Calibração</h2>" +
	"<form id='configForm' class='mt-4'>" +
	"<h4>Temperatura (°C)</h4>" +
	"<div class='row g-3 align-items-center mb-3'>" +
	"<div class='col-md-4 form-grid-item'><label for='temp_min' class='form-label'>Mínimo:</label><input type='number' step='any' id='temp_min' name='temp_min' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='temp_max' class='form-label'>Máximo:</label><input type='number' step='any' id='temp_max' name='temp_max' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='temp_offset' class='form-label'>Offset:</label><input type='number' step='any' id='temp_offset' name='temp_offset' class='form-control'></div>" +
	"</div><hr>" +
	"<h4>Umidade (%)</h4>" +
	"<div class='row g-3 align-items-center mb-3'>" +
	"<div class='col-md-4 form-grid-item'><label for='umid_min' class='form-label'>Mínimo:</label><input type='number' step='any' id='umid_min' name='umid_min' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='umid_max' class='form-label'>Máximo:</label><input type='number' step='any' id='umid_max' name='umid_max' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='umid_offset' class='form-label'>Offset:</label><input type='number' step='any' id='umid_offset' name='umid_offset' class='form-control'></div>" +
	"</div><hr>" +
	"<h4>Pressão (kPa)</h4>" +
	"<div class='row g-3 align-items-center mb-3'>" +
	"<div class='col-md-4 form-grid-item'><label for='press_min' class='form-label'>Mínimo:</label><input type='number' step='any' id='press_min' name='press_min' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='press_max' class='form-label'>Máximo:</label><input type='number' step='any' id='press_max' name='press_max' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='press_offset' class='form-label'>Offset:</label><input type='number' step='any' id='press_offset' name='press_offset' class='form-control'></div>" +
	"</div><hr>" +
	"<h4>Altitude (m)</h4>" +
	"<div class='row g-3 align-items-center mb-3'>" +
	"<div class='col-md-4 form-grid-item'><label for='alt_min' class='form-label'>Mínimo:</label><input type='number' step='any' id='alt_min' name='alt_min' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='alt_max' class='form-label'>Máximo:</label><input type='number' step='any' id='alt_max' name='alt_max' class='form-control'></div>" +
	"<div class='col-md-4 form-grid-item'><label for='alt_offset' class='form-label'>Offset:</label><input type='number' step='any' id='alt_offset' name='alt_offset' class='form-control'></div>" +
	"</div>" +
	"<button type='submit' class='btn btn-primary mt-3'>Salvar Configurações</button>" +
	"<p id='saveStatus' class='mt-2' style='color:green; font-weight:bold;'></p>" +
	"</form>" +
	"</div></div>" +
	"</main>" +
	"<script>" +
	"window.onload=()=>{fetch('/getconfig').then(r=>r.json()).then(d=>{for(const key in d){let el=document.getElementById(key);if(el)el.value=d[key];}}).catch(e=>console.error('Erro:',e));};" +
	"document.getElementById('configForm').addEventListener('submit',e=>{" +
	"e.preventDefault();const formData=new FormData(e.target);const status=document.getElementById('saveStatus');" +
	"status.textContent='Salvando...';" +
	"fetch('/config',{method:'POST',body:new URLSearchParams(formData)})" +
	".then(res=>{if(res.ok)status.textContent='Configurações salvas!';else status.textContent='Falha ao salvar.';setTimeout(()=>status.textContent='',3000);})" +
	".catch(e=>{console.error(e);status.textContent='Erro de comunicação.';});" +
	"});" +
	"</script>"

// chartTemplate carries a %d placeholder for the point window; pageChart is
// the rendered fragment shared by all four chart routes.
const chartTemplate = "<h1 id='page-title'>Gráfico</h1>" +
	"<div class='container'><div class='card chart-card'><canvas id='chart'></canvas></div></div>" +
	"<script>" +
	"const page_configs={" +
	"'/temperatura':{key:'temperatura',sufix:'temp',title:'Temperatura',label:'Temperatura (°C)',color:'rgb(255,99,132)',alpha:'rgba(255,99,132,0.2)'}," +
	"'/umidade':{key:'umidade',sufix:'umid',title:'Umidade',label:'Umidade (%)',color:'rgb(54,162,235)',alpha:'rgba(54,162,235,0.2)'}," +
	"'/pressao':{key:'pressao',sufix:'press',title:'Pressão',label:'Pressão (kPa)',color:'rgb(75,192,192)',alpha:'rgba(75,192,192,0.2)'}," +
	"'/altitude':{key:'altitude',sufix:'alt',title:'Altitude',label:'Altitude (m)',color:'rgb(153,102,255)',alpha:'rgba(153,102,255,0.2)'}" +
	"};" +
	"const config=page_configs[window.location.pathname];" +
	"document.getElementById('page-title').textContent='Gráfico de '+config.title;" +
	"let chart;" +
	"function createChart(limits){" +
	"const min_val=limits[config.sufix+'_min'];const max_val=limits[config.sufix+'_max'];" +
	"const ctx=document.getElementById('chart').getContext('2d');" +
	"chart=new Chart(ctx,{type:'line',data:{labels:[],datasets:[{label:config.label,data:[],borderColor:config.color,backgroundColor:config.alpha,borderWidth:2,fill:true,tension:0.1}]}," +
	"options:{plugins:{annotation:{annotations:{" +
	"line_min:{type:'line',yMin:min_val,yMax:min_val,borderColor:'red',borderWidth:2,borderDash:[6,6],label:{content:'Mín: '+min_val,enabled:true,position:'start'}}," +
	"line_max:{type:'line',yMin:max_val,yMax:max_val,borderColor:'green',borderWidth:2,borderDash:[6,6],label:{content:'Máx: '+max_val,enabled:true,position:'start'}}" +
	"}}}}});" +
	"}" +
	"function addData(d){if(!chart)return;const t=new Date().toLocaleTimeString('pt-BR',{hour:'2-digit',minute:'2-digit',second:'2-digit'});chart.data.labels.push(t);chart.data.datasets[0].data.push(d);if(chart.data.labels.length>%d) {chart.data.labels.shift();chart.data.datasets[0].data.shift();}chart.update('none');}" +
	"function atualizarGrafico(){fetch('/estado').then(r=>r.json()).then(d=>addData(d[config.key])).catch(e=>console.error('Erro:',e));}" +
	"window.onload=()=>{fetch('/getconfig').then(r=>r.json()).then(limits=>{createChart(limits);atualizarGrafico();setInterval(atualizarGrafico,2000);}).catch(e=>console.error('Erro:',e));};" +
	"</script>"

// Replace instead of Sprintf: the template also contains literal percent
// signs in the chart labels.
var pageChart = strings.Replace(chartTemplate, "%d", strconv.Itoa(maxChartPoints), 1)

const pageFooter = "<script src='https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/js/bootstrap.bundle.min.js'></script>" +
	"</body></html>"
